package mutate

import (
	"regexp"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
)

// RewriteReadme replaces the template title and repository URLs. The clone
// command is matched exactly; other occurrences of the template URL are
// matched case-insensitively.
func RewriteReadme(src string, r config.Record, placeholders config.ReadmePlaceholders) string {
	if placeholders.Title != "" {
		src = strings.ReplaceAll(src, placeholders.Title, "# "+r.SiteName)
	}
	if placeholders.RepoURL != "" {
		src = strings.ReplaceAll(src, "git clone "+placeholders.RepoURL+".git", "git clone "+r.RemoteURL())
		anyCase := regexp.MustCompile("(?i)" + regexp.QuoteMeta(placeholders.RepoURL))
		src = anyCase.ReplaceAllLiteralString(src, r.RepoURL())
	}
	return src
}

// UpdateReadme rewrites the project README.
func UpdateReadme(p Project, r config.Record, placeholders config.ReadmePlaceholders) (bool, error) {
	rel := p.Paths.Readme
	data, err := p.readFile(rel)
	if err != nil {
		return false, err
	}
	out := RewriteReadme(string(data), r, placeholders)
	return p.writeIfChanged(rel, data, []byte(out))
}
