//go:build !windows

package fs

import (
	"os"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic uses renameio: temp file in the target directory, fsync,
// then rename, so readers never observe a truncated file.
func (r *RealFS) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
