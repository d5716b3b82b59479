package scaffold

import "path/filepath"

// GitHubSyncSettings is plugins/github-sync/data.json.
type GitHubSyncSettings struct {
	GitPath        string `json:"gitPath"`
	RemoteURL      string `json:"remoteUrl"`
	SyncOnStartup  bool   `json:"syncOnStartup"`
	ShowRibbonIcon bool   `json:"showRibbonIcon"`
}

// PasteImageRenameSettings is plugins/obsidian-paste-image-rename/data.json.
type PasteImageRenameSettings struct {
	ImageNamePattern     string `json:"imageNamePattern"`
	DupNumberAtStart     bool   `json:"dupNumberAtStart"`
	DupNumberDelimiter   string `json:"dupNumberDelimiter"`
	AutoRename           bool   `json:"autoRename"`
	HandleAllAttachments bool   `json:"handleAllAttachments"`
}

// AppSettings is the vault's app.json.
type AppSettings struct {
	AttachmentFolderPath string   `json:"attachmentFolderPath"`
	ShowUnsupportedFiles bool     `json:"showUnsupportedFiles"`
	UserIgnoreFilters    []string `json:"userIgnoreFilters"`
}

// CommunityPlugins are enabled in community-plugins.json, in this order.
var CommunityPlugins = []string{
	"github-sync",
	"obsidian-paste-image-rename",
	"templater-obsidian",
	"obsidian-linter",
}

// AttachmentFolder is where pasted images land, relative to the project root.
var AttachmentFolder = filepath.Join("content", "_assets", "images")

// PluginFile is one settings file, relative to the .obsidian directory.
type PluginFile struct {
	RelPath string
	Value   any
}

// PluginFiles returns the settings files for the recommended plugins.
func PluginFiles(remoteURL string) []PluginFile {
	return []PluginFile{
		{
			RelPath: filepath.Join("plugins", "github-sync", "data.json"),
			Value: GitHubSyncSettings{
				RemoteURL:      remoteURL,
				ShowRibbonIcon: true,
			},
		},
		{
			RelPath: filepath.Join("plugins", "obsidian-paste-image-rename", "data.json"),
			Value: PasteImageRenameSettings{
				ImageNamePattern:   "{{fileName}}_{{DATE:YYYYMMDD}}_{{NNNNN}}",
				DupNumberDelimiter: "_",
				AutoRename:         true,
			},
		},
		{
			RelPath: "community-plugins.json",
			Value:   CommunityPlugins,
		},
		{
			RelPath: "app.json",
			Value: AppSettings{
				AttachmentFolderPath: "content/_assets/images",
				UserIgnoreFilters:    []string{"site/", "node_modules/", ".git/"},
			},
		},
	}
}
