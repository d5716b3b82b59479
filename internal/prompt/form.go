package prompt

import (
	"context"
	stderrors "errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// FormPrompter asks each question as a single-field huh form. It needs a
// terminal on both ends.
type FormPrompter struct {
	ctx context.Context
	in  io.Reader
	out ui.Printer
}

// NewFormPrompter returns a FormPrompter using in/out for the forms and out
// for section headings.
func NewFormPrompter(in io.Reader, out ui.Printer) *FormPrompter {
	return &FormPrompter{ctx: context.Background(), in: in, out: out}
}

// WithContext closes the active form with E_CANCELLED once ctx is done.
func (p *FormPrompter) WithContext(ctx context.Context) *FormPrompter {
	p.ctx = ctx
	return p
}

func (p *FormPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithInput(p.in).
		WithOutput(p.out.W).
		WithShowHelp(false)
	if err := form.RunWithContext(p.ctx); err != nil {
		if ctxErr := p.ctx.Err(); ctxErr != nil {
			return interrupted(ctxErr)
		}
		if stderrors.Is(err, huh.ErrUserAborted) {
			return cancelled()
		}
		return errors.Wrap(errors.EPromptFailed, "prompt failed", err)
	}
	return nil
}

func (p *FormPrompter) Ask(q Question) (string, error) {
	var answer string
	input := huh.NewInput().
		Title(q.Label).
		Placeholder(q.Default).
		Value(&answer)
	if q.Required && q.Default == "" {
		input = input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return stderrors.New(requiredMsg)
			}
			return nil
		})
	}

	if err := p.run(input); err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return q.Default, nil
	}
	return answer, nil
}

func (p *FormPrompter) Confirm(label string, def bool) (bool, error) {
	confirmed := def
	field := huh.NewConfirm().
		Title(label).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if err := p.run(field); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (p *FormPrompter) Section(title string) { p.out.Section(title) }

func (p *FormPrompter) Note(msg string) { p.out.Info(msg) }
