// Package render provides output formatting for vaultsetup commands.
// This file implements the setup summary and closing instructions.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// WriteSummary prints the collected configuration for confirmation.
func WriteSummary(p ui.Printer, r config.Record) {
	p.Header("Configuration Summary")

	rows := []struct{ label, value string }{
		{"Site Name", r.SiteName},
		{"GitHub User", r.GitHubUsername},
		{"Repository", r.GitHubRepo},
		{"Site URL", r.SiteURL},
		{"Categories", strings.Join(r.Categories, ", ")},
		{"Use Personas", yesNo(r.UsePersonas)},
	}
	for _, row := range rows {
		p.Infof("  %s %s", p.F.Bold(row.label+":"), p.F.Accent(row.value))
	}
	p.Blank()
}

// WriteNextSteps prints the post-setup instructions. contentDir is the
// content folder relative to the project root.
func WriteNextSteps(p ui.Printer, r config.Record, contentDir string) {
	p.Header("Setup Complete!")
	p.Success("Your Obsidian CMS is ready!")
	p.Blank()

	p.Info(p.F.Bold("Next Steps:"))
	p.Blank()

	first := "posts"
	if slugs := r.CategorySlugs(); len(slugs) > 0 {
		first = slugs[0]
	}

	steps := []struct {
		title string
		lines []string
	}{
		{"Create GitHub Repository:", []string{
			"Go to: https://github.com/new",
			"Name: " + r.GitHubRepo,
		}},
		{"Open in Obsidian:", []string{
			"Open this folder as an Obsidian vault",
		}},
		{"Install Obsidian Plugins:", []string{
			"Settings > Community Plugins > Browse",
			"- GitHub Sync",
			"- Paste Image Rename",
			"- Templater",
			"- Linter",
		}},
		{"Connect to Vercel:", []string{
			"Go to: https://vercel.com/new",
			"Import your GitHub repository",
		}},
		{"Start Writing!", []string{
			fmt.Sprintf("Create .md files in %s/", filepath.ToSlash(filepath.Join(contentDir, first))),
		}},
	}
	for i, s := range steps {
		p.Infof("%d. %s", i+1, s.title)
		for _, line := range s.lines {
			p.Info("   " + line)
		}
		p.Blank()
	}

	p.Info(p.F.Bold("Commands:"))
	p.Info("  npm run dev    - Start local dev server")
	p.Info("  npm run build  - Build static site")
	p.Blank()
	p.Info(p.F.Accent("Happy blogging!"))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
