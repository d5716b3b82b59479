package core

import "testing"

func TestShellEscapePosix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "''"},
		{"abc", "abc"},
		{"https://github.com/alice/my-blog.git", "https://github.com/alice/my-blog.git"},
		{"a b", "'a b'"},
		{"a'b", `'a'"'"'b'`},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		if got := ShellEscapePosix(tt.in); got != tt.want {
			t.Errorf("ShellEscapePosix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommandLine(t *testing.T) {
	got := CommandLine("git", "remote", "add", "origin", "https://github.com/alice/my blog.git")
	want := "git remote add origin 'https://github.com/alice/my blog.git'"
	if got != want {
		t.Errorf("CommandLine = %q, want %q", got, want)
	}
}
