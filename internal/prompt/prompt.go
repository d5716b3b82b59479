// Package prompt implements the interactive question front-ends used by the
// configuration collector.
package prompt

import (
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
)

// Question is a single free-text prompt.
type Question struct {
	Label    string
	Default  string // selected when the answer is empty
	Required bool   // re-prompt on empty answer when there is no default
}

// Prompter asks questions in order and blocks until each is answered.
type Prompter interface {
	// Ask returns the trimmed answer, or q.Default when the answer is empty.
	Ask(q Question) (string, error)
	// Confirm returns def on an empty answer.
	Confirm(label string, def bool) (bool, error)
	// Section announces a group of questions.
	Section(title string)
	// Note prints an informational line between questions.
	Note(msg string)
}

const requiredMsg = "This field is required."

// ParseYesNo interprets a yes/no answer. Empty input selects def;
// "y", "yes", "true" and "1" (any case) are affirmative; anything else is negative.
func ParseYesNo(answer string, def bool) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return def
	}
	switch a {
	case "y", "yes", "true", "1":
		return true
	default:
		return false
	}
}

func yesNoHint(def bool) string {
	if def {
		return "Y/n"
	}
	return "y/N"
}

func cancelled() error {
	return errors.New(errors.ECancelled, "Setup cancelled.")
}

// interrupted reports a prompt abandoned because its context ended.
func interrupted(err error) error {
	return errors.Wrap(errors.ECancelled, "Setup cancelled by user.", err)
}
