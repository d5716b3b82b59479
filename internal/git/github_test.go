package git

import "testing"

func TestParseGitHubRemote(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   GitHubRepo
		wantOK bool
	}{
		{"scp-like with .git", "git@github.com:alice/my-blog.git", GitHubRepo{"alice", "my-blog"}, true},
		{"scp-like without .git", "git@github.com:alice/my-blog", GitHubRepo{"alice", "my-blog"}, true},
		{"https with .git", "https://github.com/alice/my-blog.git", GitHubRepo{"alice", "my-blog"}, true},
		{"https without .git", "https://github.com/alice/my-blog", GitHubRepo{"alice", "my-blog"}, true},
		{"https trailing slash", "https://github.com/alice/my-blog/", GitHubRepo{"alice", "my-blog"}, true},
		{"ssh url", "ssh://git@github.com/alice/my-blog.git", GitHubRepo{"alice", "my-blog"}, true},
		{"whitespace", "  https://github.com/a_b/c.d\n", GitHubRepo{"a_b", "c.d"}, true},

		{"other host", "https://gitlab.com/alice/my-blog.git", GitHubRepo{}, false},
		{"enterprise scp", "git@github.example.com:alice/my-blog.git", GitHubRepo{}, false},
		{"ssh other host", "ssh://git@gitlab.com/alice/x.git", GitHubRepo{}, false},
		{"git scheme", "git://github.com/alice/my-blog.git", GitHubRepo{}, false},
		{"too deep", "https://github.com/alice/my-blog/tree/main", GitHubRepo{}, false},
		{"missing repo", "https://github.com/alice", GitHubRepo{}, false},
		{"bad chars", "https://github.com/al ice/blog", GitHubRepo{}, false},
		{"empty", "", GitHubRepo{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGitHubRemote(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseGitHubRemote(%q) = (%+v, %v), want (%+v, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
