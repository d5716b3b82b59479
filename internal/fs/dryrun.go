package fs

import (
	"bytes"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// DryRunFS reads through to a base FS but never mutates it. Every mutation
// is applied to an in-memory overlay and reported to Out: writes as unified
// diffs, directory creation and removal as one-line notices. Later reads see
// the overlay, so a sequence of mutations behaves as it would for real.
type DryRunFS struct {
	Base FS
	Out  io.Writer
	Root string // paths are reported relative to Root when possible

	files   map[string][]byte
	dirs    map[string]bool
	removed map[string]bool
	tmpSeq  int
}

// NewDryRunFS creates a DryRunFS over base.
func NewDryRunFS(base FS, out io.Writer, root string) *DryRunFS {
	return &DryRunFS{
		Base:    base,
		Out:     out,
		Root:    root,
		files:   make(map[string][]byte),
		dirs:    make(map[string]bool),
		removed: make(map[string]bool),
	}
}

func (d *DryRunFS) rel(path string) string {
	if d.Root == "" {
		return path
	}
	if r, err := filepath.Rel(d.Root, path); err == nil && !strings.HasPrefix(r, "..") {
		return filepath.ToSlash(r)
	}
	return path
}

func (d *DryRunFS) isRemoved(path string) bool {
	path = filepath.Clean(path)
	for p := path; ; p = filepath.Dir(p) {
		if d.removed[p] {
			return true
		}
		if filepath.Dir(p) == p {
			return false
		}
	}
}

func (d *DryRunFS) MkdirAll(path string, perm os.FileMode) error {
	path = filepath.Clean(path)
	if ok, _ := IsDir(d, path); ok {
		return nil
	}
	d.dirs[path] = true
	delete(d.removed, path)
	fmt.Fprintf(d.Out, "would create directory %s\n", d.rel(path))
	return nil
}

func (d *DryRunFS) ReadFile(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if data, ok := d.files[path]; ok {
		return bytes.Clone(data), nil
	}
	if d.isRemoved(path) {
		return nil, &iofs.PathError{Op: "open", Path: path, Err: iofs.ErrNotExist}
	}
	return d.Base.ReadFile(path)
}

func (d *DryRunFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	d.record(filepath.Clean(path), data)
	return nil
}

// WriteFileAtomic makes DryRunFS an AtomicWriter so atomic writes are
// reported as a single diff.
func (d *DryRunFS) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return d.WriteFile(path, data, perm)
}

func (d *DryRunFS) record(path string, data []byte) {
	before, err := d.ReadFile(path)
	if err != nil {
		before = nil
	}
	d.files[path] = bytes.Clone(data)
	delete(d.removed, path)

	name := d.rel(path)
	if before == nil {
		fmt.Fprintf(d.Out, "would create %s\n", name)
	} else if bytes.Equal(before, data) {
		fmt.Fprintf(d.Out, "unchanged %s\n", name)
		return
	} else {
		fmt.Fprintf(d.Out, "would update %s\n", name)
	}
	fmt.Fprint(d.Out, Diff(name, string(before), string(data)))
}

func (d *DryRunFS) Stat(path string) (iofs.FileInfo, error) {
	path = filepath.Clean(path)
	if data, ok := d.files[path]; ok {
		return memInfo{name: filepath.Base(path), size: int64(len(data))}, nil
	}
	if d.dirs[path] {
		return memInfo{name: filepath.Base(path), dir: true}, nil
	}
	if d.isRemoved(path) {
		return nil, &iofs.PathError{Op: "stat", Path: path, Err: iofs.ErrNotExist}
	}
	return d.Base.Stat(path)
}

func (d *DryRunFS) Rename(oldpath, newpath string) error {
	oldpath = filepath.Clean(oldpath)
	data, ok := d.files[oldpath]
	if !ok {
		return &iofs.PathError{Op: "rename", Path: oldpath, Err: iofs.ErrNotExist}
	}
	delete(d.files, oldpath)
	d.record(filepath.Clean(newpath), data)
	return nil
}

func (d *DryRunFS) Remove(path string) error {
	path = filepath.Clean(path)
	if _, ok := d.files[path]; ok {
		delete(d.files, path)
		return nil
	}
	d.removed[path] = true
	return nil
}

func (d *DryRunFS) RemoveAll(path string) error {
	path = filepath.Clean(path)
	for p := range d.files {
		if p == path || strings.HasPrefix(p, path+string(filepath.Separator)) {
			delete(d.files, p)
		}
	}
	d.removed[path] = true
	fmt.Fprintf(d.Out, "would remove %s\n", d.rel(path))
	return nil
}

func (d *DryRunFS) Chmod(path string, perm os.FileMode) error {
	return nil
}

func (d *DryRunFS) CreateTemp(dir, pattern string) (string, io.WriteCloser, error) {
	d.tmpSeq++
	path := filepath.Join(dir, strings.Replace(pattern, "*", fmt.Sprintf("dryrun%d", d.tmpSeq), 1))
	return path, &overlayWriter{d: d, path: filepath.Clean(path)}, nil
}

type overlayWriter struct {
	d    *DryRunFS
	path string
	buf  bytes.Buffer
}

func (w *overlayWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *overlayWriter) Close() error {
	w.d.files[w.path] = w.buf.Bytes()
	return nil
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (m memInfo) Name() string       { return m.name }
func (m memInfo) Size() int64        { return m.size }
func (m memInfo) ModTime() time.Time { return time.Time{} }
func (m memInfo) IsDir() bool        { return m.dir }
func (m memInfo) Sys() any           { return nil }

func (m memInfo) Mode() iofs.FileMode {
	if m.dir {
		return iofs.ModeDir | 0o755
	}
	return 0o644
}

// Diff returns a unified diff between before and after labelled with name.
// Returns "" when the inputs are equal.
func Diff(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+name, "b/"+name, before, edits))
}
