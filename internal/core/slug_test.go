package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlugify_Table(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"single word", "posts", "posts"},
		{"mixed case", "TeSt CaSe", "test-case"},
		{"spaces become hyphens", "Web Development", "web-development"},
		{"runs of spaces are kept", "a  b", "a--b"},
		{"tabs become hyphens", "a\tb", "a-b"},
		{"path separators dropped", "C++ / Go", "c++--go"},
		{"reserved chars dropped", `what? "why" <how>`, "what-why-how"},
		{"unicode kept", "Café Notes", "café-notes"},
		{"empty string", "", "untitled"},
		{"dot", ".", "untitled"},
		{"dot dot", "..", "untitled"},
		{"only reserved", "///", "untitled"},
		{"site name", "My Obsidian Blog", "my-obsidian-blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.expect {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestSlugify_Properties(t *testing.T) {
	inputs := []string{"Hello World", "Machine Learning Notes", "ALL CAPS", "x y z", "a/b\\c:d"}
	dir := t.TempDir()

	for _, in := range inputs {
		got := Slugify(in)
		if got != strings.ToLower(got) {
			t.Errorf("Slugify(%q) = %q is not lowercase", in, got)
		}
		if strings.ContainsAny(got, " \t/\\") {
			t.Errorf("Slugify(%q) = %q contains whitespace or separators", in, got)
		}
		// Must be usable as a single directory name.
		if err := os.Mkdir(filepath.Join(dir, got), 0o755); err != nil && !os.IsExist(err) {
			t.Errorf("Slugify(%q) = %q is not a valid directory name: %v", in, got, err)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"posts", "Posts"},
		{"web dev", "Web Dev"},
		{"hELLO wORLD", "Hello World"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
