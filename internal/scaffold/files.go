package scaffold

import (
	"os"
	"path/filepath"

	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
)

// File is a file to create relative to a root directory.
type File struct {
	RelPath string
	Content []byte
}

// CreateResult lists what CreateMissing did.
type CreateResult struct {
	Created []string // relative paths that were written
	Skipped []string // relative paths that already existed
}

// CreateMissing writes each file under root unless it already exists.
// Existing files are never overwritten. Parent directories are created.
func CreateMissing(fsys fs.FS, root string, files []File) (CreateResult, error) {
	result := CreateResult{}

	for _, f := range files {
		absPath := filepath.Join(root, f.RelPath)

		_, err := fsys.Stat(absPath)
		if err == nil {
			result.Skipped = append(result.Skipped, f.RelPath)
			continue
		}
		if !os.IsNotExist(err) {
			return result, err
		}

		if err := fsys.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return result, err
		}
		if err := fs.WriteFileAtomic(fsys, absPath, f.Content, 0o644); err != nil {
			return result, err
		}
		result.Created = append(result.Created, f.RelPath)
	}

	return result, nil
}
