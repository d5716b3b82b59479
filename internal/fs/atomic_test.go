package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic_Basic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	fs := NewRealFS()

	data := []byte(`{"version": 1}`)
	if err := WriteFileAtomic(fs, path, data, 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("content = %q, want %q", string(got), string(data))
	}

	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomic_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	fs := NewRealFS()

	if err := WriteFileAtomic(fs, path, []byte(`{"old": true}`), 0644); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}

	updated := []byte(`{"new": true, "version": 2}`)
	if err := WriteFileAtomic(fs, path, updated, 0644); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(updated) {
		t.Errorf("content = %q, want %q", string(got), string(updated))
	}

	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomic_GenericPathViaFSInterface(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")

	// Hide the native AtomicWriter to exercise the temp+rename fallback.
	generic := struct{ FS }{NewRealFS()}
	if err := WriteFileAtomic(generic, path, []byte("hello"), 0600); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("permissions = %o, want %o", got, 0600)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomic_RenameFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	realFS := NewRealFS()
	initial := []byte(`{"initial": true}`)
	if err := realFS.WriteFile(path, initial, 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	stubFS := &failingRenameFS{FS: realFS}

	err := WriteFileAtomic(stubFS, path, []byte(`{"new": true}`), 0644)
	if err == nil {
		t.Fatal("expected error on rename failure")
	}

	got, err := realFS.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(initial) {
		t.Errorf("original content changed: got %q, want %q", string(got), string(initial))
	}

	assertNoTempFiles(t, dir)
}

// failingRenameFS wraps an FS and fails on Rename operations.
type failingRenameFS struct {
	FS
}

func (f *failingRenameFS) Rename(oldpath, newpath string) error {
	return os.ErrPermission
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".vaultsetup-tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteJSONAtomic_ReplacesAndIsValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")
	fsys := NewRealFS()

	if err := WriteJSONAtomic(fsys, path, map[string]string{"key": "initial"}, 0o644); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}

	updated := map[string]string{"key": "updated", "new": "value"}
	if err := WriteJSONAtomic(fsys, path, updated, 0o644); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	got := make(map[string]string)
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("updated JSON is invalid: %v", err)
	}
	if got["key"] != "updated" || got["new"] != "value" {
		t.Errorf("updated content = %v, want key=updated, new=value", got)
	}
}

func TestMarshalJSON_TwoSpaceIndentNoHTMLEscape(t *testing.T) {
	data := struct {
		Pattern string   `json:"pattern"`
		List    []string `json:"list"`
	}{
		Pattern: "{{fileName}}_<x>&",
		List:    []string{"a"},
	}

	got, err := MarshalJSON(data)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	want := "{\n  \"pattern\": \"{{fileName}}_<x>&\",\n  \"list\": [\n    \"a\"\n  ]\n}\n"
	if string(got) != want {
		t.Errorf("MarshalJSON = %q, want %q", string(got), want)
	}
}

func TestWriteJSONAtomic_ParentDirMustExist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent", "test.json")

	if err := WriteJSONAtomic(NewRealFS(), path, "test", 0o644); err == nil {
		t.Error("WriteJSONAtomic should fail when parent dir doesn't exist")
	}
}
