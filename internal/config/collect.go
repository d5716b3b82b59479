package config

import (
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/core"
	"github.com/NielsdaWheelz/vaultsetup/internal/prompt"
)

// Collect asks the setup questions in their fixed order and returns the
// answers. Empty answers take the values in d; derived defaults (repository
// from site name, site URL from repository) apply when d leaves them blank.
func Collect(p prompt.Prompter, d Defaults, buildConfigPath string) (Record, error) {
	var r Record
	var err error

	ask := func(dst *string, q prompt.Question) {
		if err != nil {
			return
		}
		*dst, err = p.Ask(q)
	}
	confirm := func(dst *bool, label string, def bool) {
		if err != nil {
			return
		}
		*dst, err = p.Confirm(label, def)
	}

	p.Section("Basic Information")
	ask(&r.SiteName, prompt.Question{Label: "Site Name", Default: orDefault(d.SiteName, DefaultSiteName)})
	ask(&r.SiteDescription, prompt.Question{Label: "Site Description", Default: orDefault(d.SiteDescription, DefaultSiteDescription)})
	ask(&r.Author, prompt.Question{Label: "Author Name", Default: orDefault(d.Author, DefaultAuthor)})
	if err != nil {
		return Record{}, err
	}

	p.Section("GitHub Configuration")
	ask(&r.GitHubUsername, prompt.Question{Label: "GitHub Username", Default: d.GitHubUsername, Required: true})
	ask(&r.GitHubRepo, prompt.Question{Label: "GitHub Repository Name", Default: orDefault(d.GitHubRepo, core.Slugify(r.SiteName))})
	ask(&r.GitHubBranch, prompt.Question{Label: "Default Branch", Default: orDefault(d.GitHubBranch, DefaultBranch)})
	ask(&r.SiteURL, prompt.Question{Label: "Site URL (Vercel or custom domain)", Default: orDefault(d.SiteURL, "https://"+r.GitHubRepo+".vercel.app")})
	if err != nil {
		return Record{}, err
	}

	defaultCats := d.Categories
	if len(SplitCategories(strings.Join(defaultCats, ","))) == 0 {
		defaultCats = DefaultCategories
	}
	p.Section("Content Categories")
	p.Note("Default categories: " + strings.Join(DefaultCategories, ", "))
	p.Note("Enter custom categories (comma-separated) or press Enter for defaults")
	var catAnswer string
	ask(&catAnswer, prompt.Question{Label: "Categories", Default: joinCategories(defaultCats)})
	if err != nil {
		return Record{}, err
	}
	r.Categories = SplitCategories(catAnswer)
	if len(r.Categories) == 0 {
		r.Categories = SplitCategories(strings.Join(defaultCats, ","))
	}

	p.Section("Author Personas")
	confirm(&r.UsePersonas, "Use multiple author personas?", d.UsePersonas)
	if err != nil {
		return Record{}, err
	}
	if r.UsePersonas {
		p.Note("You can customize personas later in " + buildConfigPath)
	}

	p.Section("Obsidian Plugins")
	confirm(&r.SetupPlugins, "Configure recommended Obsidian plugins?", d.SetupPlugins)
	if err != nil {
		return Record{}, err
	}

	return r, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func joinCategories(cats []string) string {
	return strings.Join(SplitCategories(strings.Join(cats, ",")), ", ")
}
