package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

// LinePrompter reads one answer per line. End of input is treated as a
// cancellation.
type LinePrompter struct {
	ctx context.Context
	in  *bufio.Reader
	out ui.Printer
}

// NewLinePrompter returns a LinePrompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out ui.Printer) *LinePrompter {
	return &LinePrompter{ctx: context.Background(), in: bufio.NewReader(in), out: out}
}

// WithContext makes pending and later reads fail with E_CANCELLED once ctx
// is done. A read abandoned this way is never resumed, so the prompter must
// not be used after cancellation.
func (p *LinePrompter) WithContext(ctx context.Context) *LinePrompter {
	p.ctx = ctx
	return p
}

type lineResult struct {
	line string
	err  error
}

func (p *LinePrompter) readLine() (string, error) {
	if err := p.ctx.Err(); err != nil {
		return "", interrupted(err)
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- lineResult{line, err}
	}()

	var r lineResult
	select {
	case r = <-ch:
	case <-p.ctx.Done():
		return "", interrupted(p.ctx.Err())
	}

	line, err := r.line, r.err
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", cancelled()
		}
		return "", errors.Wrap(errors.EPromptFailed, "failed to read answer", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Ask(q Question) (string, error) {
	f := p.out.F
	text := f.Bold(q.Label) + ": "
	if q.Default != "" {
		text = fmt.Sprintf("%s [%s]: ", f.Bold(q.Label), f.Accent(q.Default))
	}

	for {
		fmt.Fprint(p.out.W, text)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" && q.Default != "" {
			return q.Default, nil
		}
		if answer != "" || !q.Required {
			return answer, nil
		}
		p.out.Warning(requiredMsg)
	}
}

func (p *LinePrompter) Confirm(label string, def bool) (bool, error) {
	f := p.out.F
	fmt.Fprintf(p.out.W, "%s [%s]: ", f.Bold(label), f.Accent(yesNoHint(def)))
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return ParseYesNo(answer, def), nil
}

func (p *LinePrompter) Section(title string) { p.out.Section(title) }

func (p *LinePrompter) Note(msg string) { p.out.Info(msg) }
