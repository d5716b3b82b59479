// Package git initializes the vault repository and manages its origin remote
// via CommandRunner.
package git

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/core"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
)

// OriginAction is what EnsureOrigin did to the origin remote.
type OriginAction string

const (
	OriginAdded   OriginAction = "added"
	OriginUpdated OriginAction = "updated"
)

// Result describes what EnsureRepository did.
type Result struct {
	Initialized bool         // false when .git already existed
	Origin      OriginAction // added or updated
	// BranchErr is set when pointing HEAD at the default branch failed.
	// It is a warning, not a failure.
	BranchErr error
}

// IsRepo reports whether root contains a .git entry (directory or file).
func IsRepo(fsys fs.FS, root string) (bool, error) {
	return fs.Exists(fsys, filepath.Join(root, ".git"))
}

// EnsureRepository runs `git init` in root unless it already holds a
// repository, then points the origin remote at remoteURL. A fresh
// repository gets branch as its initial branch.
func EnsureRepository(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, root, branch, remoteURL string) (Result, error) {
	var res Result

	exists, err := IsRepo(fsys, root)
	if err != nil {
		return res, errors.Wrap(errors.EGitFailed, "failed to check for an existing repository", err)
	}
	if !exists {
		if err := run(ctx, cr, root, "init"); err != nil {
			return res, err
		}
		res.Initialized = true
		if branch != "" {
			res.BranchErr = run(ctx, cr, root, "symbolic-ref", "HEAD", "refs/heads/"+branch)
		}
	}

	res.Origin, err = EnsureOrigin(ctx, cr, root, remoteURL)
	return res, err
}

// EnsureOrigin adds the origin remote, or updates its URL when it exists.
func EnsureOrigin(ctx context.Context, cr exec.CommandRunner, root, remoteURL string) (OriginAction, error) {
	if _, ok := GetOriginURL(ctx, cr, root); ok {
		if err := run(ctx, cr, root, "remote", "set-url", "origin", remoteURL); err != nil {
			return "", err
		}
		return OriginUpdated, nil
	}
	if err := run(ctx, cr, root, "remote", "add", "origin", remoteURL); err != nil {
		return "", err
	}
	return OriginAdded, nil
}

// GetOriginURL retrieves the origin remote URL using `git remote get-url origin`.
// ok is true when the command exits 0.
// Never returns an error; failures report ok=false.
func GetOriginURL(ctx context.Context, cr exec.CommandRunner, root string) (url string, ok bool) {
	result, err := cr.Run(ctx, "git", []string{"remote", "get-url", "origin"}, exec.RunOpts{Dir: root})
	if err != nil {
		return "", false
	}
	if result.ExitCode != 0 {
		return "", false
	}
	return strings.TrimSpace(result.Stdout), true
}

// run executes a git subcommand in root. Exec failures and non-zero exits
// are E_GIT_FAILED.
func run(ctx context.Context, cr exec.CommandRunner, root string, args ...string) error {
	cmdline := core.CommandLine("git", args...)
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{Dir: root})
	if err != nil {
		return errors.Wrap(errors.EGitFailed, "failed to run "+cmdline, err)
	}
	if result.ExitCode != 0 {
		details := map[string]string{"exit_code": strconv.Itoa(result.ExitCode)}
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			details["stderr"] = stderr
		}
		return errors.NewWithDetails(errors.EGitFailed, cmdline+" failed", details)
	}
	return nil
}
