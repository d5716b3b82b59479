// Package setupservice provides the concrete implementation of
// pipeline.SetupService. It wires the prerequisite checker, the answer
// collector, the file mutators, git and npm into the setup pipeline.
package setupservice

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
	"github.com/NielsdaWheelz/vaultsetup/internal/git"
	"github.com/NielsdaWheelz/vaultsetup/internal/install"
	"github.com/NielsdaWheelz/vaultsetup/internal/mutate"
	"github.com/NielsdaWheelz/vaultsetup/internal/pipeline"
	"github.com/NielsdaWheelz/vaultsetup/internal/prereq"
	"github.com/NielsdaWheelz/vaultsetup/internal/prompt"
	"github.com/NielsdaWheelz/vaultsetup/internal/render"
	"github.com/NielsdaWheelz/vaultsetup/internal/scaffold"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// Service is the production implementation of pipeline.SetupService.
type Service struct {
	cr       exec.CommandRunner
	fsys     fs.FS
	settings config.Settings
	prompter prompt.Prompter
	out      ui.Printer
	log      *log.Logger
	nowFunc  func() time.Time

	// dry is the overlay used for the whole run when st.DryRun is set.
	dry *fs.DryRunFS
}

// New creates a new Service with production dependencies.
func New(settings config.Settings, p prompt.Prompter, out ui.Printer, logger *log.Logger) *Service {
	return NewWithDeps(exec.NewRealRunner(), fs.NewRealFS(), settings, p, out, logger)
}

// NewWithDeps creates a new Service with injected dependencies for testing.
func NewWithDeps(cr exec.CommandRunner, fsys fs.FS, settings config.Settings, p prompt.Prompter, out ui.Printer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(discard{})
	}
	return &Service{
		cr:       cr,
		fsys:     fsys,
		settings: settings,
		prompter: p,
		out:      out,
		log:      logger,
		nowFunc:  time.Now,
	}
}

// SetNowFunc overrides the time source for testing.
func (s *Service) SetNowFunc(fn func() time.Time) {
	s.nowFunc = fn
}

// workFS returns the filesystem mutations go through for this run.
func (s *Service) workFS(st *pipeline.SetupState) fs.FS {
	if !st.DryRun {
		return s.fsys
	}
	if s.dry == nil {
		s.dry = fs.NewDryRunFS(s.fsys, s.out.W, st.ProjectRoot)
	}
	return s.dry
}

func (s *Service) project(st *pipeline.SetupState) mutate.Project {
	return mutate.Project{
		FS:    s.workFS(st),
		Root:  st.ProjectRoot,
		Paths: s.settings.Paths,
		Log:   s.log,
		Now:   s.nowFunc,
	}
}

// CheckPrerequisites verifies git, node and npm are installed.
func (s *Service) CheckPrerequisites(ctx context.Context, st *pipeline.SetupState) error {
	checker := prereq.NewChecker(s.cr, s.settings.NodeMinVersion, s.out)
	results, err := checker.Check(ctx)
	for _, r := range results {
		s.log.Debug("tool found", "tool", r.Tool.Name, "output", r.Output)
		if r.BelowMinimum {
			st.Warn(pipeline.WarnNodeVersion, fmt.Sprintf("%s %s is below %s", r.Tool.DisplayName, r.Output, r.Tool.Constraint))
		}
		if r.ExitCode != 0 {
			st.Warn(pipeline.WarnToolExit, fmt.Sprintf("%s version command exited with code %d", r.Tool.DisplayName, r.ExitCode))
		}
	}
	return err
}

// CollectConfig asks the setup questions. An existing GitHub origin seeds
// the username default when none is configured.
func (s *Service) CollectConfig(ctx context.Context, st *pipeline.SetupState) error {
	d := s.settings.Defaults
	if d.GitHubUsername == "" {
		if owner, ok := s.originOwner(ctx, st.ProjectRoot); ok {
			s.log.Debug("using origin owner as username default", "owner", owner)
			d.GitHubUsername = owner
		}
	}

	rec, err := config.Collect(s.prompter, d, filepath.ToSlash(s.settings.Paths.BuildConfig))
	if err != nil {
		return err
	}
	st.Record = rec
	return nil
}

func (s *Service) originOwner(ctx context.Context, root string) (string, bool) {
	if ok, _ := git.IsRepo(s.fsys, root); !ok {
		return "", false
	}
	url, ok := git.GetOriginURL(ctx, s.cr, root)
	if !ok {
		return "", false
	}
	gh, ok := git.ParseGitHubRemote(url)
	if !ok {
		return "", false
	}
	return gh.Owner, true
}

// Confirm shows the summary and asks to proceed.
func (s *Service) Confirm(ctx context.Context, st *pipeline.SetupState) error {
	render.WriteSummary(s.out, st.Record)

	ok, err := s.prompter.Confirm("Proceed with this configuration?", true)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ECancelled, "Setup cancelled.")
	}
	return nil
}

// CleanSamples removes the shipped sample content when the user agrees.
func (s *Service) CleanSamples(ctx context.Context, st *pipeline.SetupState) error {
	s.out.Header("Applying Configuration")

	ok, err := s.prompter.Confirm("Remove sample cosmetics content?", true)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Debug("keeping sample content")
		return nil
	}

	s.out.Step("Removing sample content...")
	removed, err := mutate.CleanSamples(s.project(st), s.settings.SampleFolders)
	if err != nil {
		return err
	}
	st.RemovedSamples = removed
	for _, name := range removed {
		s.out.Success("Removed " + filepath.ToSlash(filepath.Join(s.settings.Paths.Content, name)) + "/")
	}
	if len(removed) == 0 {
		s.out.Info("No sample content found.")
	}
	return nil
}

// ApplyMutations rewrites the project files and creates the content folders.
func (s *Service) ApplyMutations(ctx context.Context, st *pipeline.SetupState) error {
	p := s.project(st)
	r := st.Record

	s.out.Step("Updating configuration files...")

	changed, err := mutate.UpdateManifest(p, r)
	if err != nil {
		return err
	}
	s.reportFile(st, s.settings.Paths.Manifest, changed)

	changed, err = mutate.UpdateBuildConfig(p, r)
	if err != nil {
		return err
	}
	s.reportFile(st, s.settings.Paths.BuildConfig, changed)

	changed, err = mutate.UpdateReadme(p, r, s.settings.Readme)
	if err != nil {
		return err
	}
	s.reportFile(st, s.settings.Paths.Readme, changed)

	if r.SetupPlugins {
		s.out.Step("Configuring Obsidian plugins...")
		written, err := mutate.WritePluginSettings(p, r)
		if err != nil {
			return err
		}
		for _, rel := range written {
			s.reportFile(st, rel, true)
		}
		if len(written) == 0 {
			s.out.Info("Plugin settings already up to date.")
		}
	}

	s.out.Step("Creating content folders...")
	created, err := mutate.CreateContentFolders(p, r)
	if err != nil {
		return err
	}
	for _, rel := range created.Created {
		s.reportFile(st, filepath.Join(s.settings.Paths.Content, rel), true)
	}
	for _, rel := range created.Skipped {
		s.log.Debug("kept existing post", "path", rel)
	}

	res, err := scaffold.EnsureGitignore(p.FS, filepath.Join(st.ProjectRoot, ".gitignore"), scaffold.DefaultIgnoreEntries)
	if err != nil {
		return errors.Wrap(errors.EMutateFailed, "failed to update .gitignore", err)
	}
	s.reportFile(st, ".gitignore", res == scaffold.GitignoreUpdated)

	return nil
}

func (s *Service) reportFile(st *pipeline.SetupState, rel string, changed bool) {
	rel = filepath.ToSlash(rel)
	if !changed {
		s.log.Debug("unchanged", "path", rel)
		return
	}
	st.Changed = append(st.Changed, rel)
	if st.DryRun {
		return
	}
	s.out.Success("Updated " + rel)
}

// InitRepository initializes git and points origin at the configured
// repository. Skipped in dry-run mode.
func (s *Service) InitRepository(ctx context.Context, st *pipeline.SetupState) error {
	s.out.Step("Setting up Git repository...")
	if st.DryRun {
		s.out.Info("would initialize git and set origin to " + st.Record.RemoteURL())
		return nil
	}

	res, err := git.EnsureRepository(ctx, s.cr, s.fsys, st.ProjectRoot, st.Record.GitHubBranch, st.Record.RemoteURL())
	if res.Initialized {
		st.RepoInitialized = true
		s.out.Success("Git repository initialized")
	} else if err == nil {
		s.out.Info("Git repository already exists. Skipping init.")
	}
	if res.BranchErr != nil {
		msg := "Could not set default branch to " + st.Record.GitHubBranch
		s.out.Warning(msg)
		st.Warn(pipeline.WarnBranchSetup, msg)
		s.log.Debug("symbolic-ref failed", "err", res.BranchErr)
	}
	if err != nil {
		return err
	}

	switch res.Origin {
	case git.OriginAdded:
		s.out.Success("Added remote origin: " + st.Record.RemoteURL())
	case git.OriginUpdated:
		s.out.Success("Updated remote origin: " + st.Record.RemoteURL())
	}
	return nil
}

// InstallDependencies runs npm install when the user agrees. A failed
// install is a warning.
func (s *Service) InstallDependencies(ctx context.Context, st *pipeline.SetupState) error {
	ok, err := s.prompter.Confirm("Run npm install?", true)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if st.DryRun {
		s.out.Info("would run npm install")
		return nil
	}

	s.out.Step("Installing dependencies...")
	res := install.Run(ctx, s.cr, st.ProjectRoot)
	if res.OK {
		st.Installed = true
		s.out.Success("Dependencies installed")
		return nil
	}

	s.log.Debug("npm install failed", "reason", res.Reason)
	s.out.Warning("npm install had some issues. You may need to run it manually.")
	if res.Stderr != "" {
		s.out.Info(res.Stderr)
	}
	st.Warn(pipeline.WarnInstallFailed, res.Reason)
	return nil
}

// Report prints the next steps.
func (s *Service) Report(ctx context.Context, st *pipeline.SetupState) error {
	if st.DryRun {
		s.out.Blank()
		s.out.Warning(fmt.Sprintf("Dry run: %d file(s) would change. Nothing was written.", len(st.Changed)))
		return nil
	}
	render.WriteNextSteps(s.out, st.Record, filepath.ToSlash(s.settings.Paths.Content))
	s.log.Debug("setup finished", "elapsed", s.nowFunc().Sub(st.StartedAt), "warnings", len(st.Warnings))
	return nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
