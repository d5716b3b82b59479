// Package cli handles command-line parsing and dispatch for vaultsetup.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/vaultsetup/internal/commands"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
	"github.com/NielsdaWheelz/vaultsetup/internal/version"
)

// Deps are the collaborators commands run against.
type Deps struct {
	Runner exec.CommandRunner
	FS     fs.FS
	Env    commands.Env
}

// Run parses arguments and dispatches to the appropriate command.
// Returns an error if the command fails; the caller should print the error and exit.
func Run(ctx context.Context, args []string, in io.Reader, stdout, stderr io.Writer) error {
	env, err := commands.OSEnv()
	if err != nil {
		return err
	}
	return RunWithDeps(ctx, args, commands.IO{In: in, Out: stdout, Err: stderr}, Deps{
		Runner: exec.NewRealRunner(),
		FS:     fs.NewRealFS(),
		Env:    env,
	})
}

// RunWithDeps is Run with injected dependencies.
func RunWithDeps(ctx context.Context, args []string, std commands.IO, deps Deps) error {
	root := newRootCmd(std, deps)
	root.SetArgs(args)
	root.SetIn(std.In)
	root.SetOut(std.Out)
	root.SetErr(std.Err)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if _, ok := errors.AsSetupError(err); ok {
		return err
	}
	// Anything cobra rejects itself (unknown command, bad args) is a usage error.
	return errors.Wrap(errors.EUsage, "invalid usage", err)
}

func newRootCmd(std commands.IO, deps Deps) *cobra.Command {
	var (
		dir        string
		configFile string
		setupOpts  commands.SetupOpts
	)

	root := &cobra.Command{
		Use:   "vaultsetup",
		Short: "Configure an Obsidian + GitHub + Vercel CMS checkout",
		Long: `vaultsetup asks a few questions about your site, then rewrites the
project files, creates the content folders, initializes git and installs
dependencies.

Answers can be pre-filled from vaultsetup.yaml in the project directory,
from config.yaml in the user config directory, or from VAULTSETUP_*
environment variables.`,
		Example: `  vaultsetup
  vaultsetup --dir ./my-vault --yes --config answers.yaml
  vaultsetup --dry-run
  vaultsetup doctor --json`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupOpts.Dir = dir
			setupOpts.ConfigFile = configFile
			_, err := commands.Setup(cmd.Context(), deps.Runner, deps.FS, deps.Env, setupOpts, std)
			return err
		},
	}
	root.SetVersionTemplate("vaultsetup {{.Version}}\n")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&dir, "dir", "", "project directory (default: current directory)")
	pf.StringVar(&configFile, "config", "", "answers file (default: vaultsetup.yaml in the project)")

	f := root.Flags()
	f.BoolVarP(&setupOpts.Yes, "yes", "y", false, "accept every default without prompting")
	f.BoolVar(&setupOpts.Form, "form", false, "use full-screen forms when attached to a terminal")
	f.BoolVar(&setupOpts.DryRun, "dry-run", false, "print the changes instead of writing them; skip git and npm")
	f.StringVar(&setupOpts.LogLevel, "log-level", "", "diagnostics level: debug, info, warn, error")

	root.AddCommand(newDoctorCmd(std, deps, &dir, &configFile))
	return root
}

func newDoctorCmd(std commands.IO, deps Deps, dir, configFile *string) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites and show resolved paths",
		Long: `Verifies git, node and npm are installed and reports the resolved
config and cache directories, the answers file in use and the
project's origin remote.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Doctor(cmd.Context(), deps.Runner, deps.FS, deps.Env, commands.DoctorOpts{
				Dir:        *dir,
				ConfigFile: *configFile,
				JSON:       jsonOut,
			}, std)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
