//go:build windows

package fs

import "os"

// WriteFileAtomic falls back to the generic temp file + rename strategy;
// renameio does not support Windows.
func (r *RealFS) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return WriteFileAtomic(struct{ FS }{r}, path, data, perm)
}
