package commands

import (
	"context"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
	"github.com/NielsdaWheelz/vaultsetup/internal/git"
	"github.com/NielsdaWheelz/vaultsetup/internal/prereq"
	"github.com/NielsdaWheelz/vaultsetup/internal/render"
)

// DoctorOpts holds options for the doctor command.
type DoctorOpts struct {
	Dir        string
	ConfigFile string
	JSON       bool
}

// Doctor implements `vaultsetup doctor`.
// Reports resolved paths, the project's git state and every tool version.
// Unlike setup, every tool is checked; any tool that cannot be started
// fails with E_TOOL_MISSING after the report is written.
func Doctor(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, env Env, opts DoctorOpts, std IO) error {
	root, err := projectRoot(opts.Dir)
	if err != nil {
		return err
	}

	settings, dirs, err := loadSettings(env, root, opts.ConfigFile)
	if err != nil {
		return err
	}

	report := render.DoctorReport{
		ProjectRoot: root,
		ConfigDir:   dirs.ConfigDir,
		CacheDir:    dirs.CacheDir,
		ConfigFile:  settings.File,
	}

	report.IsRepo, err = git.IsRepo(fsys, root)
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to check for a git repository", err)
	}
	if report.IsRepo {
		if url, ok := git.GetOriginURL(ctx, cr, root); ok {
			report.OriginURL = url
			if gh, ok := git.ParseGitHubRemote(url); ok {
				report.GitHubOwner = gh.Owner
				report.GitHubRepo = gh.Name
			}
		}
	}

	var missing []string
	for _, tool := range prereq.DefaultTools(settings.NodeMinVersion) {
		res, err := prereq.CheckTool(ctx, cr, tool)
		if err != nil {
			if errors.GetCode(err) != errors.EToolMissing {
				return err
			}
			missing = append(missing, tool.Name)
			report.Tools = append(report.Tools, render.ToolStatus{Name: tool.Name, Download: tool.Download})
			continue
		}
		report.Tools = append(report.Tools, render.ToolStatus{
			Name:         tool.Name,
			Found:        true,
			Version:      res.Output,
			BelowMinimum: res.BelowMinimum,
			ExitCode:     res.ExitCode,
		})
	}

	if opts.JSON {
		if err := render.WriteDoctorJSON(std.Out, report); err != nil {
			return errors.Wrap(errors.EInternal, "failed to write json output", err)
		}
	} else {
		render.WriteDoctorText(std.Out, report)
	}

	if len(missing) > 0 {
		return errors.NewWithDetails(errors.EToolMissing, "required tools are missing",
			map[string]string{"tools": strings.Join(missing, ", ")})
	}
	return nil
}
