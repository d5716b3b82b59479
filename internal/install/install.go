// Package install runs the project's package manager install.
package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
)

// StderrLimit caps how much of a failed install's stderr is shown.
const StderrLimit = 500

// Result is the outcome of an install. Failures are reported here rather
// than as errors: a failed install never aborts setup.
type Result struct {
	OK     bool
	Reason string // why the install failed
	Stderr string // at most StderrLimit bytes
}

// Run executes `npm install` in root.
func Run(ctx context.Context, cr exec.CommandRunner, root string) Result {
	out, err := cr.Run(ctx, "npm", []string{"install"}, exec.RunOpts{Dir: root})
	if err != nil {
		return Result{Reason: err.Error(), Stderr: truncate(out.Stderr, StderrLimit)}
	}
	if out.ExitCode != 0 {
		return Result{
			Reason: fmt.Sprintf("npm install exited with code %d", out.ExitCode),
			Stderr: truncate(out.Stderr, StderrLimit),
		}
	}
	return Result{OK: true}
}

// truncate returns at most n bytes of s without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && cut < len(s) && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
