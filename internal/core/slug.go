// Package core holds the small naming rules shared by the collector and the
// mutators.
package core

import (
	"strings"
	"unicode"
)

const fallbackSlug = "untitled"

// Slugify converts a display name into a directory-safe slug:
//   - lowercase
//   - every whitespace rune => hyphen (runs are not collapsed)
//   - path separators, reserved filename characters and control runes dropped
//   - "", "." and ".." => "untitled"
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune('-')
		case unicode.IsControl(r):
		case strings.ContainsRune(`/\:*?"<>|`, r):
		default:
			b.WriteRune(r)
		}
	}

	result := b.String()
	if result == "" || result == "." || result == ".." {
		return fallbackSlug
	}
	return result
}
