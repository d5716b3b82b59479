package commands

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
	"github.com/NielsdaWheelz/vaultsetup/internal/lock"
	"github.com/NielsdaWheelz/vaultsetup/internal/pipeline"
	"github.com/NielsdaWheelz/vaultsetup/internal/prompt"
	"github.com/NielsdaWheelz/vaultsetup/internal/setupservice"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// Banner is printed before setup starts.
const Banner = "Obsidian + GitHub + Vercel CMS Setup"

// SetupOpts holds options for the setup command.
type SetupOpts struct {
	// Dir is the project root (empty = cwd).
	Dir string

	// ConfigFile is an explicit answers file.
	ConfigFile string

	// Yes accepts every default without prompting.
	Yes bool

	// Form uses full-screen forms when stdin is a terminal.
	Form bool

	// DryRun prints diffs instead of writing, and skips git and npm.
	DryRun bool

	// LogLevel overrides the configured diagnostics level.
	LogLevel string
}

// Setup runs the interactive setup pipeline against the project.
func Setup(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, env Env, opts SetupOpts, std IO) (*pipeline.SetupState, error) {
	root, err := projectRoot(opts.Dir)
	if err != nil {
		return nil, err
	}

	settings, dirs, err := loadSettings(env, root, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(std.Err, opts.LogLevel, settings.LogLevel)
	if err != nil {
		return nil, err
	}
	if settings.File != "" {
		logger.Debug("loaded answers file", "file", settings.File)
	}

	if !opts.DryRun {
		unlock, err := lock.NewProjectLock(dirs.CacheDir).Lock(root, "setup")
		if err != nil {
			var locked *lock.ErrLocked
			if stderrors.As(err, &locked) {
				return nil, errors.WrapWithDetails(errors.ELocked, "another vaultsetup is running on this project", err,
					map[string]string{"lock": locked.Path})
			}
			return nil, errors.Wrap(errors.EInternal, "failed to acquire project lock", err)
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("failed to release project lock", "err", err)
			}
		}()
	}

	out := ui.NewPrinter(std.Out)
	out.Header(Banner)
	if opts.DryRun {
		out.Warning("Dry run: no files will be written.")
	}

	p := choosePrompter(ctx, opts, std.In, out)
	svc := setupservice.NewWithDeps(cr, fsys, settings, p, out, logger)
	st, err := pipeline.NewPipeline(svc).Run(ctx, pipeline.SetupOpts{
		ProjectRoot: root,
		DryRun:      opts.DryRun,
	})
	if err != nil {
		logger.Debug("setup stopped", "code", errors.GetCode(err))
	}
	return st, err
}

func choosePrompter(ctx context.Context, opts SetupOpts, in io.Reader, out ui.Printer) prompt.Prompter {
	if opts.Yes {
		return prompt.NewDefaultsPrompter(out)
	}
	if opts.Form && isTerminal(in) {
		return prompt.NewFormPrompter(in, out).WithContext(ctx)
	}
	return prompt.NewLinePrompter(in, out).WithContext(ctx)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
