package mutate

import (
	"path/filepath"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
)

// CleanSamples recursively removes the named folders under the content
// directory. Missing folders are ignored. Returns the folders removed.
func CleanSamples(p Project, folders []string) ([]string, error) {
	var removed []string
	for _, name := range folders {
		if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
			p.logger().Warn("ignoring sample folder outside the content directory", "folder", name)
			continue
		}
		dir := p.path(p.Paths.Content, name)
		ok, err := fs.Exists(p.FS, dir)
		if err != nil {
			return removed, errors.Wrap(errors.EMutateFailed, "failed to check "+dir, err)
		}
		if !ok {
			continue
		}
		if err := p.FS.RemoveAll(dir); err != nil {
			return removed, errors.Wrap(errors.EMutateFailed, "failed to remove "+dir, err)
		}
		p.logger().Debug("removed sample folder", "dir", dir)
		removed = append(removed, name)
	}
	return removed, nil
}
