package errors

import (
	"bytes"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(EUsage, "test message")

	if err.Error() != "E_USAGE: test message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "E_USAGE: test message")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(EMutateFailed, "wrapped message", cause)

	if err.Error() != "E_MUTATE_FAILED: wrapped message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "E_MUTATE_FAILED: wrapped message")
	}

	var se *SetupError
	if !errors.As(err, &se) {
		t.Fatal("errors.As failed")
	}
	if se.Cause != cause {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see the cause")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil error", nil, ""},
		{"setup error", New(EUsage, "x"), EUsage},
		{"wrapped setup error", Wrap(EGitFailed, "y", errors.New("z")), EGitFailed},
		{"non-setup error", errors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetCode(tt.err)
			if got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"E_CANCELLED", New(ECancelled, "x"), 0},
		{"E_USAGE", New(EUsage, "x"), 2},
		{"E_TOOL_MISSING", New(EToolMissing, "x"), 1},
		{"E_MUTATE_FAILED", New(EMutateFailed, "x"), 1},
		{"non-setup error", errors.New("x"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitCode(tt.err)
			if got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain message", New(EUsage, "bad args"), "[ERROR] bad args\n"},
		{
			"tool missing with download link",
			NewWithDetails(EToolMissing, "Git is not installed. Please install Git first.", map[string]string{
				DetailDownload: "https://git-scm.com/downloads",
			}),
			"[ERROR] Git is not installed. Please install Git first.\n  Download: https://git-scm.com/downloads\n",
		},
		{
			"cause appended",
			Wrap(EMutateFailed, "failed to update README.md", errors.New("permission denied")),
			"[ERROR] failed to update README.md: permission denied\n",
		},
		{
			"details sorted, hint last",
			NewWithDetails(EGitFailed, "git failed", map[string]string{
				DetailHint: "run git manually",
				"step":     "init",
				"exit":     "128",
			}),
			"[ERROR] git failed\n  exit: 128\n  step: init\n  run git manually\n",
		},
		{"cancelled", New(ECancelled, "Setup cancelled."), "\nSetup cancelled.\n"},
		{"non-setup error", errors.New("plain"), "[ERROR] plain\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Print(&buf, tt.err)
			got := buf.String()
			if got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorFormatStability(t *testing.T) {
	err := New(EUsage, "x")
	expected := "E_USAGE: x"
	if err.Error() != expected {
		t.Errorf("error format changed: got %q, want %q", err.Error(), expected)
	}
}

func TestNewWithDetails_NilDetails(t *testing.T) {
	err := NewWithDetails(EUsage, "test", nil)

	se, ok := AsSetupError(err)
	if !ok {
		t.Fatal("AsSetupError failed")
	}
	if se.Details != nil {
		t.Errorf("Details should be nil, got %v", se.Details)
	}
}

func TestNewWithDetails_Copy(t *testing.T) {
	details := map[string]string{"key": "value"}
	err := NewWithDetails(EUsage, "test", details)

	details["key"] = "modified"

	se, ok := AsSetupError(err)
	if !ok {
		t.Fatal("AsSetupError failed")
	}
	if se.Details["key"] != "value" {
		t.Errorf("Details should be copied")
	}
}

func TestAsSetupError(t *testing.T) {
	t.Run("direct SetupError", func(t *testing.T) {
		se, ok := AsSetupError(New(EUsage, "test"))
		if !ok {
			t.Fatal("should return true for SetupError")
		}
		if se.Code != EUsage {
			t.Errorf("Code = %q, want %q", se.Code, EUsage)
		}
	})

	t.Run("non SetupError", func(t *testing.T) {
		se, ok := AsSetupError(errors.New("regular error"))
		if ok || se != nil {
			t.Error("should return nil, false for non-SetupError")
		}
	})

	t.Run("nil error", func(t *testing.T) {
		se, ok := AsSetupError(nil)
		if ok || se != nil {
			t.Error("should return nil, false for nil")
		}
	})
}
