package config

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/paths"
)

// EnvPrefix is the prefix for environment overrides (VAULTSETUP_SITE_NAME, ...).
const EnvPrefix = "VAULTSETUP"

// FileName is the answers file looked up in the project root.
const FileName = "vaultsetup"

// Built-in defaults.
const (
	DefaultSiteName        = "My Obsidian Blog"
	DefaultSiteDescription = "A zero-cost CMS powered by Obsidian"
	DefaultAuthor          = "author"
	DefaultBranch          = "main"
	DefaultNodeMinVersion  = "18.0.0"
	DefaultLogLevel        = "warn"
)

// DefaultCategories is used when no categories are supplied.
var DefaultCategories = []string{"posts", "tutorials", "notes"}

// DefaultSampleFolders are the shipped example content folders.
var DefaultSampleFolders = []string{"development", "products", "ingredients", "trends", "tips", "videos"}

// Defaults seed the answers offered by the collector.
type Defaults struct {
	SiteName        string   `mapstructure:"site_name"`
	SiteDescription string   `mapstructure:"site_description"`
	Author          string   `mapstructure:"author"`
	GitHubUsername  string   `mapstructure:"github_username"`
	GitHubRepo      string   `mapstructure:"github_repo"`
	GitHubBranch    string   `mapstructure:"github_branch"`
	SiteURL         string   `mapstructure:"site_url"`
	Categories      []string `mapstructure:"categories"`
	UsePersonas     bool     `mapstructure:"use_personas"`
	SetupPlugins    bool     `mapstructure:"setup_plugins"`
}

// Paths locate the project files, relative to the project root.
type Paths struct {
	Manifest    string `mapstructure:"manifest"`
	BuildConfig string `mapstructure:"build_config"`
	Readme      string `mapstructure:"readme"`
	Content     string `mapstructure:"content"`
	Obsidian    string `mapstructure:"obsidian"`
}

// ReadmePlaceholders are the template strings rewritten in the README.
type ReadmePlaceholders struct {
	Title   string `mapstructure:"title"`
	RepoURL string `mapstructure:"repo_url"`
}

// Settings is the merged result of built-in defaults, the answers file and
// the environment.
type Settings struct {
	Defaults       `mapstructure:",squash"`
	Paths          Paths              `mapstructure:"paths"`
	SampleFolders  []string           `mapstructure:"sample_folders"`
	Readme         ReadmePlaceholders `mapstructure:"readme"`
	NodeMinVersion string             `mapstructure:"node_min_version"`
	LogLevel       string             `mapstructure:"log_level"`

	// File is the answers file that was read, or "" when none was found.
	File string `mapstructure:"-"`
}

// LoadOptions controls where Load looks for the answers file.
type LoadOptions struct {
	ConfigFile  string // explicit --config; must exist when set
	ProjectRoot string
	ConfigDir   string // user config dir, see paths.ResolveDirs
	Env         paths.Env
}

// SetDefaults registers every known key with its built-in default. Keys must
// be registered for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper, env paths.Env) {
	v.SetDefault("site_name", DefaultSiteName)
	v.SetDefault("site_description", DefaultSiteDescription)
	v.SetDefault("author", defaultAuthor(env))
	v.SetDefault("github_username", "")
	v.SetDefault("github_repo", "")
	v.SetDefault("github_branch", DefaultBranch)
	v.SetDefault("site_url", "")
	v.SetDefault("categories", DefaultCategories)
	v.SetDefault("use_personas", false)
	v.SetDefault("setup_plugins", true)

	v.SetDefault("paths.manifest", "package.json")
	v.SetDefault("paths.build_config", filepath.Join("site", "src", "build.js"))
	v.SetDefault("paths.readme", "README.md")
	v.SetDefault("paths.content", "content")
	v.SetDefault("paths.obsidian", ".obsidian")
	v.SetDefault("sample_folders", DefaultSampleFolders)
	v.SetDefault("readme.title", "# AI Cosmetics Innovation Journal")
	v.SetDefault("readme.repo_url", "https://github.com/passeth/ai-diven_cos")
	v.SetDefault("node_min_version", DefaultNodeMinVersion)
	v.SetDefault("log_level", DefaultLogLevel)
}

func defaultAuthor(env paths.Env) string {
	if env == nil {
		return DefaultAuthor
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if name := strings.TrimSpace(env.Get(key)); name != "" {
			return name
		}
	}
	return DefaultAuthor
}

// Load reads settings into v and returns the merged result.
//
// Lookup order for the answers file: opts.ConfigFile, then vaultsetup.yaml
// in the project root, then config.yaml in the user config dir. A missing
// file is fine unless it was named explicitly.
func Load(v *viper.Viper, opts LoadOptions) (Settings, error) {
	SetDefaults(v, opts.Env)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readAnswersFile(v, opts); err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(errors.EConfigInvalid, "invalid configuration", err)
	}
	s.File = v.ConfigFileUsed()

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func readAnswersFile(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.WrapWithDetails(errors.EConfigInvalid, "failed to read config file", err,
				map[string]string{"file": opts.ConfigFile})
		}
		return nil
	}

	for _, candidate := range []struct{ dir, name string }{
		{opts.ProjectRoot, FileName},
		{opts.ConfigDir, "config"},
	} {
		if candidate.dir == "" {
			continue
		}
		cv := viper.New()
		cv.SetConfigName(candidate.name)
		cv.SetConfigType("yaml")
		cv.AddConfigPath(candidate.dir)
		err := cv.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			continue
		}
		if err != nil {
			return errors.WrapWithDetails(errors.EConfigInvalid, "failed to read config file", err,
				map[string]string{"dir": candidate.dir})
		}

		v.SetConfigFile(cv.ConfigFileUsed())
		if err := v.ReadInConfig(); err != nil {
			return errors.WrapWithDetails(errors.EConfigInvalid, "failed to read config file", err,
				map[string]string{"file": cv.ConfigFileUsed()})
		}
		return nil
	}
	return nil
}

// Validate checks the tool settings. Prompt defaults are not validated.
func (s Settings) Validate() error {
	projectPaths := []struct{ key, value string }{
		{"paths.manifest", s.Paths.Manifest},
		{"paths.build_config", s.Paths.BuildConfig},
		{"paths.readme", s.Paths.Readme},
		{"paths.content", s.Paths.Content},
		{"paths.obsidian", s.Paths.Obsidian},
	}
	for _, p := range projectPaths {
		if strings.TrimSpace(p.value) == "" {
			return errors.New(errors.EConfigInvalid, p.key+" must be a non-empty string")
		}
		if filepath.IsAbs(p.value) {
			return errors.New(errors.EConfigInvalid, p.key+" must be relative to the project root")
		}
	}
	if strings.TrimSpace(s.NodeMinVersion) == "" {
		return errors.New(errors.EConfigInvalid, "node_min_version must be a non-empty string")
	}
	return nil
}
