package mutate

import (
	"path/filepath"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
	"github.com/NielsdaWheelz/vaultsetup/internal/scaffold"
)

// WritePluginSettings writes the recommended Obsidian plugin settings when
// r.SetupPlugins is set. Existing settings files are replaced. Returns the
// paths written, relative to the project root.
func WritePluginSettings(p Project, r config.Record) ([]string, error) {
	if !r.SetupPlugins {
		return nil, nil
	}

	var written []string
	for _, f := range scaffold.PluginFiles(r.RemoteURL()) {
		rel := filepath.Join(p.Paths.Obsidian, f.RelPath)
		abs := p.path(rel)

		if err := p.FS.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return written, errors.Wrap(errors.EMutateFailed, "failed to create "+filepath.ToSlash(filepath.Dir(rel)), err)
		}
		data, err := fs.MarshalJSON(f.Value)
		if err != nil {
			return written, errors.Wrap(errors.EInternal, "failed to encode "+filepath.ToSlash(rel), err)
		}
		before, _ := p.FS.ReadFile(abs)
		changed, err := p.writeIfChanged(rel, before, data)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, rel)
		}
	}
	return written, nil
}
