package mutate

import (
	"path/filepath"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/scaffold"
)

// CreateContentFolders creates a folder per category with a welcome post and
// the attachments folder. Existing posts are never overwritten.
func CreateContentFolders(p Project, r config.Record) (scaffold.CreateResult, error) {
	contentDir := p.path(p.Paths.Content)
	date := p.now()

	slugs := r.CategorySlugs()
	files := make([]scaffold.File, 0, len(slugs))
	for i, slug := range slugs {
		dir := filepath.Join(contentDir, slug)
		if err := p.FS.MkdirAll(dir, 0o755); err != nil {
			return scaffold.CreateResult{}, errors.Wrap(errors.EMutateFailed, "failed to create "+dir, err)
		}
		doc, err := scaffold.SampleDoc(r.Categories[i], slug, date)
		if err != nil {
			return scaffold.CreateResult{}, errors.Wrap(errors.EInternal, "failed to render sample post", err)
		}
		files = append(files, scaffold.File{
			RelPath: filepath.Join(slug, scaffold.SampleFileName(slug)),
			Content: doc,
		})
	}

	res, err := scaffold.CreateMissing(p.FS, contentDir, files)
	if err != nil {
		return res, errors.Wrap(errors.EMutateFailed, "failed to write sample posts", err)
	}
	for _, rel := range res.Skipped {
		p.logger().Debug("sample post exists; keeping", "file", rel)
	}

	assets := filepath.Join(p.Root, scaffold.AttachmentFolder)
	if err := p.FS.MkdirAll(assets, 0o755); err != nil {
		return res, errors.Wrap(errors.EMutateFailed, "failed to create "+assets, err)
	}
	return res, nil
}
