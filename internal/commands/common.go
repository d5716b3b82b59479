// Package commands implements vaultsetup CLI commands.
package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/paths"
)

// IO bundles the standard streams a command reads and writes.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Env resolves the user directories and the environment for a command.
type Env struct {
	Vars    paths.Env
	HomeDir string
}

// OSEnv returns the process environment.
func OSEnv() (Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, errors.Wrap(errors.EInternal, "failed to get home directory", err)
	}
	return Env{Vars: paths.OSEnv{}, HomeDir: home}, nil
}

// projectRoot resolves dir to an absolute directory, defaulting to cwd.
func projectRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.EInternal, "failed to resolve project directory", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.NewWithDetails(errors.EUsage, "project directory does not exist",
			map[string]string{"dir": abs})
	}
	return abs, nil
}

// loadSettings reads the answers file and environment overrides.
func loadSettings(env Env, root, configFile string) (config.Settings, paths.Dirs, error) {
	dirs := paths.ResolveDirs(env.Vars, env.HomeDir)
	settings, err := config.Load(viper.New(), config.LoadOptions{
		ConfigFile:  configFile,
		ProjectRoot: root,
		ConfigDir:   dirs.ConfigDir,
		Env:         env.Vars,
	})
	return settings, dirs, err
}

// newLogger returns the diagnostics logger. flagLevel wins over the
// configured level when set.
func newLogger(w io.Writer, flagLevel, configured string) (*log.Logger, error) {
	name := strings.TrimSpace(flagLevel)
	if name == "" {
		name = configured
	}
	level, err := log.ParseLevel(strings.ToLower(name))
	if err != nil {
		return nil, errors.WrapWithDetails(errors.EUsage, "invalid log level", err,
			map[string]string{"level": name})
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "vaultsetup",
		Level:  level,
	}), nil
}
