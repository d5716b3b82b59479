// Package prereq verifies that the external tools setup depends on are
// installed.
package prereq

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/NielsdaWheelz/vaultsetup/internal/core"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/exec"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// Tool describes one required binary.
type Tool struct {
	Name        string   // binary name on PATH
	DisplayName string   // e.g. "Node.js"
	Args        []string // arguments that print the version
	Download    string   // install page shown when missing
	Constraint  string   // optional semver constraint, e.g. ">= 18.0.0"
	MissingHint string   // appended to the "is not installed" message
}

// Result is the outcome of checking one tool.
type Result struct {
	Tool    Tool
	Output  string          // first line of the version output
	Version *semver.Version // nil when the output has no recognizable version
	// BelowMinimum is true when Version does not satisfy Tool.Constraint.
	BelowMinimum bool
	// ExitCode of the version command. Non-zero still counts as installed.
	ExitCode int
}

// DefaultTools returns git, node and npm in check order. nodeMin is the
// lowest recommended node version.
func DefaultTools(nodeMin string) []Tool {
	return []Tool{
		{
			Name:        "git",
			DisplayName: "Git",
			Args:        []string{"--version"},
			Download:    "https://git-scm.com/downloads",
			MissingHint: "Please install Git first.",
		},
		{
			Name:        "node",
			DisplayName: "Node.js",
			Args:        []string{"--version"},
			Download:    "https://nodejs.org/",
			Constraint:  ">= " + strings.TrimPrefix(strings.TrimSpace(nodeMin), "v"),
			MissingHint: "Please install Node.js " + majorOf(nodeMin) + "+ first.",
		},
		{
			Name:        "npm",
			DisplayName: "npm",
			Args:        []string{"--version"},
			Download:    "https://docs.npmjs.com/downloading-and-installing-node-js-and-npm",
		},
	}
}

func majorOf(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.Index(v, "."); i >= 0 {
		return v[:i]
	}
	return v
}

// Checker runs the tool checks.
type Checker struct {
	Runner exec.CommandRunner
	Tools  []Tool
	Out    ui.Printer
}

// NewChecker returns a Checker for the default tool set.
func NewChecker(cr exec.CommandRunner, nodeMin string, out ui.Printer) *Checker {
	return &Checker{Runner: cr, Tools: DefaultTools(nodeMin), Out: out}
}

// Check verifies each tool in order and stops at the first one that cannot
// be started, which is reported as E_TOOL_MISSING. A version below the minimum is only a
// warning. Results for every tool checked so far are returned.
func (c *Checker) Check(ctx context.Context) ([]Result, error) {
	c.Out.Header("Checking Prerequisites")

	results := make([]Result, 0, len(c.Tools))
	for _, tool := range c.Tools {
		c.Out.Step(fmt.Sprintf("Checking %s installation...", tool.DisplayName))

		res, err := CheckTool(ctx, c.Runner, tool)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		c.Out.Success(fmt.Sprintf("%s found: %s", tool.DisplayName, displayVersion(res)))
		if res.ExitCode != 0 {
			c.Out.Warning(fmt.Sprintf("%s exited with code %d", core.CommandLine(tool.Name, tool.Args...), res.ExitCode))
		}
		if res.BelowMinimum {
			c.Out.Warning(fmt.Sprintf("%s %s+ recommended. You have %s", tool.DisplayName, strings.TrimPrefix(tool.Constraint, ">= "), res.Output))
		}
	}
	c.Out.Blank()
	return results, nil
}

// CheckTool runs a single version check.
func CheckTool(ctx context.Context, cr exec.CommandRunner, tool Tool) (Result, error) {
	res := Result{Tool: tool}

	out, err := cr.Run(ctx, tool.Name, tool.Args, exec.RunOpts{})
	if err != nil {
		msg := tool.DisplayName + " is not installed."
		if !exec.IsNotFound(err) {
			msg = tool.DisplayName + " could not be run."
		}
		if tool.MissingHint != "" {
			msg += " " + tool.MissingHint
		}
		return res, errors.WrapWithDetails(errors.EToolMissing, msg, err, map[string]string{
			errors.DetailDownload: tool.Download,
		})
	}

	// The binary ran; a failing version command is reported, not fatal.
	res.ExitCode = out.ExitCode
	res.Output = firstLine(out.Stdout)
	res.Version = ParseVersion(res.Output)

	if tool.Constraint != "" && res.Version != nil {
		constraint, err := semver.NewConstraint(tool.Constraint)
		if err != nil {
			return res, errors.Wrap(errors.EConfigInvalid, "invalid minimum version for "+tool.Name, err)
		}
		res.BelowMinimum = !constraint.Check(res.Version)
	}
	return res, nil
}

var versionPattern = regexp.MustCompile(`v?(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the first dotted version number from s, such as
// "v20.11.1" or "git version 2.43.0". Returns nil when none is found.
func ParseVersion(s string) *semver.Version {
	m := versionPattern.FindString(s)
	if m == "" {
		return nil
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil
	}
	return v
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// npm prints a bare version number.
func displayVersion(r Result) string {
	if r.Tool.Name == "npm" && r.Output != "" && !strings.HasPrefix(r.Output, "v") {
		return "v" + r.Output
	}
	return r.Output
}
