package scaffold

import (
	"os"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
)

// DefaultIgnoreEntries keep local-only files out of the vault repository.
var DefaultIgnoreEntries = []string{"node_modules/", ".obsidian/workspace.json"}

// GitignoreResult indicates what happened to .gitignore.
type GitignoreResult string

const (
	GitignoreUpdated   GitignoreResult = "updated"
	GitignoreUnchanged GitignoreResult = "unchanged"
)

// EnsureGitignore ensures every entry is in .gitignore.
// Creates the file if missing. Does not add duplicate entries; "dir/" and
// "dir" are treated as the same entry. Ensures the file ends with a newline.
func EnsureGitignore(fsys fs.FS, gitignorePath string, entries []string) (GitignoreResult, error) {
	content, err := fsys.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}

	existing := string(content)
	newContent := existing
	if len(newContent) > 0 && !strings.HasSuffix(newContent, "\n") {
		newContent += "\n"
	}
	for _, entry := range entries {
		if hasEntry(newContent, entry) {
			continue
		}
		newContent += entry + "\n"
	}

	if newContent == existing {
		return GitignoreUnchanged, nil
	}
	if err := fs.WriteFileAtomic(fsys, gitignorePath, []byte(newContent), 0o644); err != nil {
		return "", err
	}
	return GitignoreUpdated, nil
}

func hasEntry(content, entry string) bool {
	want := strings.TrimSuffix(entry, "/")
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSuffix(strings.TrimSpace(line), "/") == want {
			return true
		}
	}
	return false
}
