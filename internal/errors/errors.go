// Package errors defines the stable error code system for vaultsetup.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// Code is a stable error code string.
type Code string

// Error codes.
const (
	EUsage    Code = "E_USAGE"
	EInternal Code = "E_INTERNAL"

	// Run control
	ECancelled Code = "E_CANCELLED"
	ELocked    Code = "E_LOCKED"

	// Prerequisites
	EToolMissing Code = "E_TOOL_MISSING"

	// Configuration collection
	EPromptFailed   Code = "E_PROMPT_FAILED"
	ERequiredAnswer Code = "E_REQUIRED_ANSWER"
	EConfigInvalid  Code = "E_CONFIG_INVALID"

	// Mutation
	EManifestInvalid Code = "E_MANIFEST_INVALID"
	EMutateFailed    Code = "E_MUTATE_FAILED"

	// Repository
	EGitFailed Code = "E_GIT_FAILED"
)

// Detail keys rendered specially by Print.
const (
	DetailDownload = "download"
	DetailHint     = "hint"
)

// SetupError is the standard error type for vaultsetup errors.
type SetupError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *SetupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *SetupError) Unwrap() error {
	return e.Cause
}

// New creates a new SetupError with the given code and message.
func New(code Code, msg string) error {
	return &SetupError{Code: code, Msg: msg}
}

// NewWithDetails creates a new SetupError with code, message, and details.
// Details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &SetupError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new SetupError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &SetupError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new SetupError wrapping an underlying error with details.
// Details map is copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &SetupError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not a SetupError.
func GetCode(err error) Code {
	var se *SetupError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// AsSetupError returns (*SetupError, true) if err is or wraps a SetupError.
func AsSetupError(err error) (*SetupError, bool) {
	var se *SetupError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the process exit code for an error.
// Returns 0 for nil and E_CANCELLED, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ECancelled:
		return 0
	case EUsage:
		return 2
	default:
		return 1
	}
}

// Print writes the error to w:
//
//	[ERROR] <message>
//	  Download: <url>
//	  <key>: <value>
//
// A cancellation is rendered as a plain notice instead.
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	f := ui.NewFormatter(w)

	var se *SetupError
	if !errors.As(err, &se) {
		fmt.Fprintln(w, f.Format(ui.SeverityError, err.Error()))
		return
	}

	if se.Code == ECancelled {
		fmt.Fprintf(w, "\n%s\n", se.Msg)
		return
	}

	msg := se.Msg
	if se.Cause != nil && se.Code != EToolMissing {
		msg += ": " + se.Cause.Error()
	}
	fmt.Fprintln(w, f.Format(ui.SeverityError, msg))

	if url := se.Details[DetailDownload]; url != "" {
		fmt.Fprintf(w, "  Download: %s\n", url)
	}
	keys := make([]string, 0, len(se.Details))
	for k := range se.Details {
		if k != DetailDownload && k != DetailHint {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, se.Details[k])
	}
	if hint := se.Details[DetailHint]; hint != "" {
		fmt.Fprintf(w, "  %s\n", strings.TrimSpace(hint))
	}
}
