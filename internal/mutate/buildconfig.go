package mutate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/core"
)

// Palette is cycled through when assigning category colors.
var Palette = []string{"#6366f1", "#ec4899", "#10b981", "#f59e0b", "#8b5cf6", "#ef4444"}

// Block names in the build configuration.
const (
	CategoriesBlock = "CATEGORIES"
	PersonasBlock   = "PERSONAS"
)

// Category is one entry of the CATEGORIES block.
type Category struct {
	Slug        string
	Name        string
	Description string
	Color       string
}

// Persona is one entry of the PERSONAS block.
type Persona struct {
	Key    string
	Name   string
	Role   string
	Avatar string
	Bio    string
}

// DefaultAvatar is the avatar of the single persona written when personas
// are disabled.
const DefaultAvatar = "/assets/personas/default.svg"

// CategoriesFor builds the category records for the configured names.
func CategoriesFor(names []string) []Category {
	cats := make([]Category, 0, len(names))
	for i, name := range names {
		cats = append(cats, Category{
			Slug:        core.Slugify(name),
			Name:        core.TitleCase(name),
			Description: "Articles about " + name,
			Color:       Palette[i%len(Palette)],
		})
	}
	return cats
}

// SinglePersona is the persona written when multiple personas are disabled.
func SinglePersona(r config.Record) Persona {
	return Persona{
		Key:    "author",
		Name:   r.Author,
		Role:   "Author",
		Avatar: DefaultAvatar,
		Bio:    r.SiteDescription,
	}
}

// RenderCategories renders a complete CATEGORIES declaration.
func RenderCategories(cats []Category) string {
	var b strings.Builder
	b.WriteString("const " + CategoriesBlock + " = {\n")
	for _, c := range cats {
		fmt.Fprintf(&b, "  %s: { name: %s, description: %s, color: %s },\n",
			jsKey(c.Slug), jsString(c.Name), jsString(c.Description), jsString(c.Color))
	}
	b.WriteString("};")
	return b.String()
}

// RenderPersonas renders a complete PERSONAS declaration.
func RenderPersonas(personas []Persona) string {
	var b strings.Builder
	b.WriteString("const " + PersonasBlock + " = {\n")
	for i, p := range personas {
		fmt.Fprintf(&b, "  %s: {\n", jsString(p.Key))
		fmt.Fprintf(&b, "    name: %s,\n", jsString(p.Name))
		fmt.Fprintf(&b, "    role: %s,\n", jsString(p.Role))
		fmt.Fprintf(&b, "    avatar: %s,\n", jsString(p.Avatar))
		fmt.Fprintf(&b, "    bio: %s\n", jsString(p.Bio))
		b.WriteString("  }")
		if i < len(personas)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("};")
	return b.String()
}

// ParseCategories reads the entries of the CATEGORIES block in src.
// Reports false when the block is missing.
func ParseCategories(src string) ([]Category, bool, error) {
	b, found, err := findBlock(src, CategoriesBlock)
	if !found || err != nil {
		return nil, found, err
	}
	entries, err := parseEntries(b.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", CategoriesBlock, err)
	}
	cats := make([]Category, 0, len(entries))
	for _, e := range entries {
		cats = append(cats, Category{
			Slug:        e.Key,
			Name:        e.Fields["name"],
			Description: e.Fields["description"],
			Color:       e.Fields["color"],
		})
	}
	return cats, true, nil
}

// ParsePersonas reads the entries of the PERSONAS block in src.
// Reports false when the block is missing.
func ParsePersonas(src string) ([]Persona, bool, error) {
	b, found, err := findBlock(src, PersonasBlock)
	if !found || err != nil {
		return nil, found, err
	}
	entries, err := parseEntries(b.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", PersonasBlock, err)
	}
	personas := make([]Persona, 0, len(entries))
	for _, e := range entries {
		personas = append(personas, Persona{
			Key:    e.Key,
			Name:   e.Fields["name"],
			Role:   e.Fields["role"],
			Avatar: e.Fields["avatar"],
			Bio:    e.Fields["bio"],
		})
	}
	return personas, true, nil
}

const jsQuoted = `'(?:[^'\\\n]|\\.)*'`

var (
	siteURLPattern  = regexp.MustCompile(`siteUrl: process\.env\.SITE_URL \|\| ` + jsQuoted)
	siteNamePattern = regexp.MustCompile(`siteName: ` + jsQuoted)
)

// Skip is a build configuration entry RewriteBuildConfig left unchanged.
// Err is nil when the entry was not found at all.
type Skip struct {
	Entry string
	Err   error
}

// RewriteBuildConfig applies the setup answers to build configuration source.
// Missing settings and blocks, and blocks that are not flat object literals,
// are left alone and reported as skips.
func RewriteBuildConfig(src string, r config.Record) (string, []Skip) {
	var skips []Skip

	if siteURLPattern.MatchString(src) {
		src = siteURLPattern.ReplaceAllLiteralString(src, "siteUrl: process.env.SITE_URL || "+jsString(r.SiteURL))
	} else {
		skips = append(skips, Skip{Entry: "siteUrl"})
	}
	if siteNamePattern.MatchString(src) {
		src = siteNamePattern.ReplaceAllLiteralString(src, "siteName: "+jsString(r.SiteName))
	} else {
		skips = append(skips, Skip{Entry: "siteName"})
	}

	// A block is replaced only when its current contents parse as records.
	blocks := []blockEdit{{
		name:        CategoriesBlock,
		replacement: RenderCategories(CategoriesFor(r.Categories)),
		parse: func(src string) (bool, error) {
			_, found, err := ParseCategories(src)
			return found, err
		},
	}}
	if !r.UsePersonas {
		blocks = append(blocks, blockEdit{
			name:        PersonasBlock,
			replacement: RenderPersonas([]Persona{SinglePersona(r)}),
			parse: func(src string) (bool, error) {
				_, found, err := ParsePersonas(src)
				return found, err
			},
		})
	}
	for _, blk := range blocks {
		found, err := blk.parse(src)
		if !found || err != nil {
			skips = append(skips, Skip{Entry: blk.name, Err: err})
			continue
		}
		src, err = replaceBlock(src, blk.name, blk.replacement)
		if err != nil {
			skips = append(skips, Skip{Entry: blk.name, Err: err})
		}
	}
	return src, skips
}

type blockEdit struct {
	name        string
	replacement string
	parse       func(src string) (found bool, err error)
}

// UpdateBuildConfig rewrites the site URL, site name, categories and, unless
// personas are enabled, the personas of the build configuration.
func UpdateBuildConfig(p Project, r config.Record) (bool, error) {
	rel := p.Paths.BuildConfig
	data, err := p.readFile(rel)
	if err != nil {
		return false, err
	}
	lg := p.logger()

	out, skips := RewriteBuildConfig(string(data), r)
	for _, s := range skips {
		if s.Err != nil {
			lg.Warn("build configuration block is not a flat object literal; leaving it unchanged", "file", rel, "entry", s.Entry, "err", s.Err)
			continue
		}
		lg.Warn("build configuration entry not found; skipping", "file", rel, "entry", s.Entry)
	}
	return p.writeIfChanged(rel, data, []byte(out))
}
