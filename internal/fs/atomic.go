package fs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// AtomicWriter is implemented by filesystems with a native atomic write.
type AtomicWriter interface {
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

// WriteFileAtomic writes data to path atomically.
// If fsys implements AtomicWriter its native implementation is used; otherwise
// a temp file is created in the same directory as path and renamed over it.
// If the operation fails, the original file (if any) is left unchanged.
// The caller must ensure the parent directory exists.
func WriteFileAtomic(fsys FS, path string, data []byte, perm os.FileMode) error {
	if aw, ok := fsys.(AtomicWriter); ok {
		return aw.WriteFileAtomic(path, data, perm)
	}

	dir := filepath.Dir(path)
	pattern := ".vaultsetup-tmp-*"

	tmpPath, w, err := fsys.CreateTemp(dir, pattern)
	if err != nil {
		return err
	}

	success := false
	defer func() {
		if !success {
			fsys.Remove(tmpPath)
		}
	}()

	if _, err = w.Write(data); err != nil {
		w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	if err := fsys.Chmod(tmpPath, perm); err != nil {
		return err
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}

// MarshalJSON encodes v with 2-space indentation, no HTML escaping and a
// trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSONAtomic encodes v with MarshalJSON and writes it atomically.
func WriteJSONAtomic(fsys FS, path string, v any, perm os.FileMode) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	return WriteFileAtomic(fsys, path, data, perm)
}
