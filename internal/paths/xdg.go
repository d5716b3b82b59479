// Package paths resolves the per-user directories vaultsetup reads from and
// writes to, following XDG conventions.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "vaultsetup"

// Dirs holds the resolved directory paths for vaultsetup config and cache.
type Dirs struct {
	ConfigDir string // user-level answers file lives here
	CacheDir  string // project locks live here
}

// Env is the interface for environment variable lookups.
// Implementations must return "" for unset variables.
type Env interface {
	Get(key string) string
}

// OSEnv implements Env using os.Getenv.
type OSEnv struct{}

func (OSEnv) Get(key string) string {
	return os.Getenv(key)
}

// ResolveDirs computes the config and cache directories.
//
// Resolution order for the config directory:
//  1. VAULTSETUP_CONFIG_DIR
//  2. macOS: ~/Library/Preferences/vaultsetup
//  3. XDG_CONFIG_HOME/vaultsetup
//  4. ~/.config/vaultsetup
//
// Resolution order for the cache directory:
//  1. VAULTSETUP_CACHE_DIR
//  2. macOS: ~/Library/Caches/vaultsetup
//  3. XDG_CACHE_HOME/vaultsetup
//  4. ~/.cache/vaultsetup
//
// Does not touch the filesystem. ~ inside env vars is literal.
func ResolveDirs(env Env, homeDir string) Dirs {
	return ResolveDirsWithOS(env, homeDir, IsDarwin())
}

// IsDarwin returns true if the current OS is macOS.
func IsDarwin() bool {
	return runtime.GOOS == "darwin"
}

// ResolveDirsWithOS is like ResolveDirs but accepts an explicit OS flag for testing.
func ResolveDirsWithOS(env Env, homeDir string, isDarwin bool) Dirs {
	return Dirs{
		ConfigDir: resolve(env, "VAULTSETUP_CONFIG_DIR", "XDG_CONFIG_HOME",
			filepath.Join(homeDir, "Library", "Preferences"),
			filepath.Join(homeDir, ".config"), isDarwin),
		CacheDir: resolve(env, "VAULTSETUP_CACHE_DIR", "XDG_CACHE_HOME",
			filepath.Join(homeDir, "Library", "Caches"),
			filepath.Join(homeDir, ".cache"), isDarwin),
	}
}

func resolve(env Env, override, xdgVar, darwinBase, fallbackBase string, isDarwin bool) string {
	if v := env.Get(override); v != "" {
		return v
	}
	if isDarwin {
		return filepath.Join(darwinBase, appName)
	}
	if v := env.Get(xdgVar); v != "" {
		return filepath.Join(v, appName)
	}
	return filepath.Join(fallbackBase, appName)
}
