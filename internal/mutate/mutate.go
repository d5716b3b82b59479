// Package mutate rewrites the project files of a freshly cloned vault to match
// the collected setup answers. Every mutator is idempotent: applying it twice
// leaves the same bytes as applying it once.
package mutate

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
)

// Project is the target of the mutators.
type Project struct {
	FS    fs.FS
	Root  string
	Paths config.Paths
	Log   *log.Logger
	Now   func() time.Time
}

func (p Project) path(rel ...string) string {
	return filepath.Join(append([]string{p.Root}, rel...)...)
}

func (p Project) logger() *log.Logger {
	if p.Log == nil {
		return log.New(nilWriter{})
	}
	return p.Log
}

func (p Project) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// readFile reads a project file, mapping failures to E_MUTATE_FAILED.
func (p Project) readFile(rel string) ([]byte, error) {
	data, err := p.FS.ReadFile(p.path(rel))
	if err != nil {
		return nil, errors.WrapWithDetails(errors.EMutateFailed, "failed to read "+filepath.ToSlash(rel), err,
			map[string]string{"path": p.path(rel)})
	}
	return data, nil
}

// writeIfChanged writes data when it differs from before. Reports whether a
// write happened.
func (p Project) writeIfChanged(rel string, before, after []byte) (bool, error) {
	if string(before) == string(after) {
		p.logger().Debug("unchanged", "file", rel)
		return false, nil
	}
	if err := p.writeFile(rel, after); err != nil {
		return false, err
	}
	return true, nil
}

func (p Project) writeFile(rel string, data []byte) error {
	abs := p.path(rel)
	if err := fs.WriteFileAtomic(p.FS, abs, data, filePerm(p.FS, abs)); err != nil {
		return errors.WrapWithDetails(errors.EMutateFailed, "failed to write "+filepath.ToSlash(rel), err,
			map[string]string{"path": abs})
	}
	p.logger().Debug("wrote", "file", rel, "bytes", len(data))
	return nil
}

// filePerm keeps the mode of an existing file.
func filePerm(fsys fs.FS, path string) os.FileMode {
	if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
		return info.Mode().Perm()
	}
	return 0o644
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }
