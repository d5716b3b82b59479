// Package config collects the setup answers and loads the tool settings that
// seed them.
package config

import (
	"strings"

	"github.com/samber/lo"

	"github.com/NielsdaWheelz/vaultsetup/internal/core"
)

// Record holds the answers for one setup run. It is built once by Collect and
// read by every later step.
type Record struct {
	SiteName        string
	SiteDescription string
	Author          string
	GitHubUsername  string
	GitHubRepo      string
	GitHubBranch    string
	SiteURL         string
	Categories      []string // display names, in answer order; never empty
	UsePersonas     bool
	SetupPlugins    bool
}

// RepoURL returns the GitHub web URL of the configured repository.
func (r Record) RepoURL() string {
	return "https://github.com/" + r.GitHubUsername + "/" + r.GitHubRepo
}

// RemoteURL returns the clone URL used for the origin remote.
func (r Record) RemoteURL() string {
	return r.RepoURL() + ".git"
}

// CategorySlugs returns the directory-safe form of each category.
func (r Record) CategorySlugs() []string {
	return lo.Map(r.Categories, func(c string, _ int) string {
		return core.Slugify(c)
	})
}

// SplitCategories splits a comma-separated answer, trimming entries and
// dropping empty ones. Entries naming the same folder keep only the first
// spelling. Order is preserved.
func SplitCategories(answer string) []string {
	parts := lo.Map(strings.Split(answer, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.UniqBy(lo.Compact(parts), core.Slugify)
}
