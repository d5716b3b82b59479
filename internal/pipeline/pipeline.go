// Package pipeline provides the setup pipeline orchestrator.
// The pipeline executes steps in a fixed order, short-circuits on first error,
// and preserves SetupError codes.
package pipeline

import (
	"context"
	"time"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
)

// SetupOpts contains the inputs for running a pipeline.
type SetupOpts struct {
	// ProjectRoot is the absolute path of the project being set up.
	ProjectRoot string

	// DryRun reports changes instead of making them.
	DryRun bool
}

// Warning represents a non-fatal warning emitted during pipeline execution.
type Warning struct {
	// Code is a stable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string
}

// Warning codes.
const (
	WarnNodeVersion    = "W_NODE_VERSION"
	WarnBranchSetup    = "W_BRANCH_SETUP"
	WarnInstallFailed  = "W_INSTALL_FAILED"
	WarnMissingSetting = "W_MISSING_SETTING"
	WarnToolExit       = "W_TOOL_EXIT"
)

// SetupState accumulates state during pipeline execution.
// Fields are populated by steps as they execute.
type SetupState struct {
	// From opts (copied at start)
	ProjectRoot string
	DryRun      bool

	StartedAt time.Time

	// Populated by CollectConfig
	Record config.Record

	// Populated by CleanSamples
	RemovedSamples []string

	// Populated by ApplyMutations (paths relative to ProjectRoot)
	Changed []string

	// Populated by InitRepository
	RepoInitialized bool

	// Populated by InstallDependencies
	Installed bool

	// Accumulated warnings (non-fatal)
	Warnings []Warning
}

// Warn records a non-fatal warning.
func (st *SetupState) Warn(code, msg string) {
	st.Warnings = append(st.Warnings, Warning{Code: code, Message: msg})
}

// SetupService defines the step implementations for the setup pipeline.
// Each method corresponds to a pipeline step executed in order.
// Implementations are injected to allow testing without real git/npm/fs.
type SetupService interface {
	// CheckPrerequisites verifies git, node and npm are installed.
	CheckPrerequisites(ctx context.Context, st *SetupState) error

	// CollectConfig asks the setup questions and stores the record.
	CollectConfig(ctx context.Context, st *SetupState) error

	// Confirm shows the summary; declining returns E_CANCELLED.
	Confirm(ctx context.Context, st *SetupState) error

	// CleanSamples optionally removes the shipped sample content.
	CleanSamples(ctx context.Context, st *SetupState) error

	// ApplyMutations rewrites project files and creates content folders.
	ApplyMutations(ctx context.Context, st *SetupState) error

	// InitRepository initializes git and points origin at the repository.
	InitRepository(ctx context.Context, st *SetupState) error

	// InstallDependencies optionally runs npm install.
	InstallDependencies(ctx context.Context, st *SetupState) error

	// Report prints the next steps.
	Report(ctx context.Context, st *SetupState) error
}

// Pipeline orchestrates the execution of setup steps in a fixed order.
type Pipeline struct {
	svc     SetupService
	nowFunc func() time.Time
}

// NewPipeline creates a pipeline with the given service implementation.
func NewPipeline(svc SetupService) *Pipeline {
	return &Pipeline{
		svc:     svc,
		nowFunc: time.Now,
	}
}

// SetNowFunc overrides the time source for testing.
func (p *Pipeline) SetNowFunc(fn func() time.Time) {
	p.nowFunc = fn
}

type step struct {
	name string
	fn   func(context.Context, *SetupState) error
}

// Run executes the pipeline steps in fixed order:
//  1. CheckPrerequisites
//  2. CollectConfig
//  3. Confirm
//  4. CleanSamples
//  5. ApplyMutations
//  6. InitRepository
//  7. InstallDependencies
//  8. Report
//
// Behavior:
//   - Executes steps in order; short-circuits on first error
//   - If error is *SetupError, preserves code/message/details exactly
//   - If error is not *SetupError, wraps into *SetupError with:
//     Code = E_INTERNAL, Message = "internal error", Cause = original error,
//     Details = map[string]string{"step": "<StepName>"}
//   - A cancelled context stops the pipeline before the next step with E_CANCELLED
//   - A step failing after the context was cancelled also reports E_CANCELLED
//   - Returns the state even on error
func (p *Pipeline) Run(ctx context.Context, opts SetupOpts) (*SetupState, error) {
	st := &SetupState{
		ProjectRoot: opts.ProjectRoot,
		DryRun:      opts.DryRun,
		StartedAt:   p.nowFunc(),
	}

	steps := []step{
		{StepCheckPrerequisites, p.svc.CheckPrerequisites},
		{StepCollectConfig, p.svc.CollectConfig},
		{StepConfirm, p.svc.Confirm},
		{StepCleanSamples, p.svc.CleanSamples},
		{StepApplyMutations, p.svc.ApplyMutations},
		{StepInitRepository, p.svc.InitRepository},
		{StepInstallDependencies, p.svc.InstallDependencies},
		{StepReport, p.svc.Report},
	}

	for _, s := range steps {
		if ctx.Err() != nil {
			return st, cancelledAt(ctx, s.name)
		}
		if err := s.fn(ctx, st); err != nil {
			if ctx.Err() != nil {
				return st, cancelledAt(ctx, s.name)
			}
			return st, wrapStepError(err, s.name)
		}
	}

	return st, nil
}

func cancelledAt(ctx context.Context, stepName string) error {
	return errors.WrapWithDetails(errors.ECancelled, "Setup cancelled by user.", ctx.Err(),
		map[string]string{"step": stepName})
}

// wrapStepError ensures the error is a *SetupError.
// If already *SetupError, returns it unchanged.
// Otherwise wraps it with E_INTERNAL and step name in details.
func wrapStepError(err error, stepName string) error {
	if err == nil {
		return nil
	}

	if _, ok := errors.AsSetupError(err); ok {
		return err
	}

	return errors.WrapWithDetails(
		errors.EInternal,
		"internal error",
		err,
		map[string]string{"step": stepName},
	)
}

// Step name constants.
const (
	StepCheckPrerequisites  = "CheckPrerequisites"
	StepCollectConfig       = "CollectConfig"
	StepConfirm             = "Confirm"
	StepCleanSamples        = "CleanSamples"
	StepApplyMutations      = "ApplyMutations"
	StepInitRepository      = "InitRepository"
	StepInstallDependencies = "InstallDependencies"
	StepReport              = "Report"
)
