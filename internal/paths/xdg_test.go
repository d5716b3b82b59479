package paths

import (
	"path/filepath"
	"testing"
)

// mapEnv is a simple map-backed Env implementation for testing.
type mapEnv map[string]string

func (m mapEnv) Get(key string) string {
	return m[key]
}

func TestResolveDirs_ConfigDir(t *testing.T) {
	home := filepath.FromSlash("/home/testuser")

	tests := []struct {
		name     string
		env      mapEnv
		isDarwin bool
		want     string
	}{
		{
			name:     "override (linux)",
			env:      mapEnv{"VAULTSETUP_CONFIG_DIR": "/custom/config"},
			isDarwin: false,
			want:     "/custom/config",
		},
		{
			name:     "override (darwin)",
			env:      mapEnv{"VAULTSETUP_CONFIG_DIR": "/custom/config"},
			isDarwin: true,
			want:     "/custom/config",
		},
		{
			name:     "darwin default",
			env:      mapEnv{},
			isDarwin: true,
			want:     filepath.FromSlash("/home/testuser/Library/Preferences/vaultsetup"),
		},
		{
			name:     "XDG_CONFIG_HOME fallback",
			env:      mapEnv{"XDG_CONFIG_HOME": "/xdg/config"},
			isDarwin: false,
			want:     filepath.FromSlash("/xdg/config/vaultsetup"),
		},
		{
			name:     "default fallback",
			env:      mapEnv{},
			isDarwin: false,
			want:     filepath.FromSlash("/home/testuser/.config/vaultsetup"),
		},
		{
			name:     "darwin ignores XDG_CONFIG_HOME",
			env:      mapEnv{"XDG_CONFIG_HOME": "/xdg/config"},
			isDarwin: true,
			want:     filepath.FromSlash("/home/testuser/Library/Preferences/vaultsetup"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := ResolveDirsWithOS(tt.env, home, tt.isDarwin)
			if dirs.ConfigDir != tt.want {
				t.Errorf("ConfigDir = %q, want %q", dirs.ConfigDir, tt.want)
			}
		})
	}
}

func TestResolveDirs_CacheDir(t *testing.T) {
	home := filepath.FromSlash("/home/testuser")

	tests := []struct {
		name     string
		env      mapEnv
		isDarwin bool
		want     string
	}{
		{"override", mapEnv{"VAULTSETUP_CACHE_DIR": "/c"}, false, "/c"},
		{"darwin default", mapEnv{}, true, filepath.FromSlash("/home/testuser/Library/Caches/vaultsetup")},
		{"XDG_CACHE_HOME", mapEnv{"XDG_CACHE_HOME": "/xdg/cache"}, false, filepath.FromSlash("/xdg/cache/vaultsetup")},
		{"default fallback", mapEnv{}, false, filepath.FromSlash("/home/testuser/.cache/vaultsetup")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := ResolveDirsWithOS(tt.env, home, tt.isDarwin)
			if dirs.CacheDir != tt.want {
				t.Errorf("CacheDir = %q, want %q", dirs.CacheDir, tt.want)
			}
		})
	}
}
