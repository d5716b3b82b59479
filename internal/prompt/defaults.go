package prompt

import (
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// DefaultsPrompter answers every question with its default and echoes the
// choice. A required question without a default is an error.
type DefaultsPrompter struct {
	out ui.Printer
}

// NewDefaultsPrompter returns a non-interactive Prompter.
func NewDefaultsPrompter(out ui.Printer) *DefaultsPrompter {
	return &DefaultsPrompter{out: out}
}

func (p *DefaultsPrompter) Ask(q Question) (string, error) {
	if q.Required && q.Default == "" {
		return "", errors.NewWithDetails(errors.ERequiredAnswer, q.Label+" has no default and --yes was given", map[string]string{
			errors.DetailHint: "set it in vaultsetup.yaml or the matching VAULTSETUP_* environment variable",
		})
	}
	p.out.Infof("%s: %s", p.out.F.Bold(q.Label), q.Default)
	return q.Default, nil
}

func (p *DefaultsPrompter) Confirm(label string, def bool) (bool, error) {
	answer := "no"
	if def {
		answer = "yes"
	}
	p.out.Infof("%s %s", p.out.F.Bold(label), answer)
	return def, nil
}

func (p *DefaultsPrompter) Section(title string) { p.out.Section(title) }

func (p *DefaultsPrompter) Note(msg string) {}
