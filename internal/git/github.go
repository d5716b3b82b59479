package git

import (
	"regexp"
	"strings"
)

// GitHubRepo identifies a repository on github.com.
type GitHubRepo struct {
	Owner string
	Name  string
}

// validName matches GitHub owner and repository names.
var validName = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// ParseGitHubRemote extracts owner and repository from a github.com remote
// URL. Accepted forms:
//
//	git@github.com:owner/repo.git
//	ssh://git@github.com/owner/repo.git
//	https://github.com/owner/repo(.git)
//
// Any other host or shape reports ok=false.
func ParseGitHubRemote(raw string) (GitHubRepo, bool) {
	raw = strings.TrimSpace(raw)

	var path string
	switch {
	case strings.HasPrefix(raw, "https://github.com/"):
		path = strings.TrimPrefix(raw, "https://github.com/")
	case strings.HasPrefix(raw, "ssh://"):
		rest := strings.TrimPrefix(raw, "ssh://")
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		if !strings.HasPrefix(rest, "github.com/") {
			return GitHubRepo{}, false
		}
		path = strings.TrimPrefix(rest, "github.com/")
	case !strings.Contains(raw, "://") && strings.Contains(raw, "@github.com:"):
		path = raw[strings.Index(raw, "@github.com:")+len("@github.com:"):]
	default:
		return GitHubRepo{}, false
	}

	parts := strings.Split(strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git"), "/")
	if len(parts) != 2 || !validName.MatchString(parts[0]) || !validName.MatchString(parts[1]) {
		return GitHubRepo{}, false
	}
	return GitHubRepo{Owner: parts[0], Name: parts[1]}, true
}
