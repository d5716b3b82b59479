// Package ui renders user-facing console messages.
//
// Everything here is a pure function of its inputs: a Formatter carries only
// the decision whether to emit ANSI colors, and a Printer pairs a Formatter
// with a destination writer.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Severity selects the prefix and color of a message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityStep
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityStep:
		return "step"
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

var prefixes = map[Severity]string{
	SeverityStep:    ">>",
	SeveritySuccess: "[OK]",
	SeverityWarning: "[!]",
	SeverityError:   "[ERROR]",
}

var palette = map[Severity][]color.Attribute{
	SeverityStep:    {color.FgHiCyan},
	SeveritySuccess: {color.FgHiGreen},
	SeverityWarning: {color.FgHiYellow},
	SeverityError:   {color.FgHiRed},
}

const headerWidth = 50

// Formatter produces formatted message strings.
type Formatter struct {
	Color bool
}

// NewFormatter returns a Formatter that colors output only when w is a
// terminal and colors have not been disabled globally (NO_COLOR, --no-color).
func NewFormatter(w io.Writer) Formatter {
	if color.NoColor {
		return Formatter{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return Formatter{}
	}
	fd := f.Fd()
	return Formatter{Color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

// Format returns msg prefixed and colored for the given severity.
// Info messages are returned unchanged.
func (f Formatter) Format(sev Severity, msg string) string {
	text := msg
	if p, ok := prefixes[sev]; ok {
		text = p + " " + msg
	}
	return f.paint(text, palette[sev]...)
}

// Header returns a three-line banner around title.
func (f Formatter) Header(title string) string {
	bar := strings.Repeat("=", headerWidth)
	attrs := []color.Attribute{color.FgHiMagenta, color.Bold}
	return "\n" + f.paint(bar, attrs...) + "\n" +
		f.paint("  "+title, attrs...) + "\n" +
		f.paint(bar, attrs...) + "\n"
}

// Section returns a bold "--- title ---" divider.
func (f Formatter) Section(title string) string {
	return f.Bold("--- " + title + " ---")
}

// Bold returns s in bold.
func (f Formatter) Bold(s string) string {
	return f.paint(s, color.Bold)
}

// Accent returns s in the accent color used for defaults and values.
func (f Formatter) Accent(s string) string {
	return f.paint(s, color.FgHiCyan)
}

func (f Formatter) paint(s string, attrs ...color.Attribute) string {
	if !f.Color || len(attrs) == 0 {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Printer writes formatted messages to W.
type Printer struct {
	W io.Writer
	F Formatter
}

// NewPrinter returns a Printer for w with terminal-aware coloring.
func NewPrinter(w io.Writer) Printer {
	return Printer{W: w, F: NewFormatter(w)}
}

func (p Printer) Step(msg string)    { fmt.Fprintln(p.W, p.F.Format(SeverityStep, msg)) }
func (p Printer) Success(msg string) { fmt.Fprintln(p.W, p.F.Format(SeveritySuccess, msg)) }
func (p Printer) Warning(msg string) { fmt.Fprintln(p.W, p.F.Format(SeverityWarning, msg)) }
func (p Printer) Error(msg string)   { fmt.Fprintln(p.W, p.F.Format(SeverityError, msg)) }

// Info writes msg without prefix or color.
func (p Printer) Info(msg string) { fmt.Fprintln(p.W, msg) }

// Infof is the formatted variant of Info.
func (p Printer) Infof(format string, args ...any) { fmt.Fprintf(p.W, format+"\n", args...) }

// Header writes a banner.
func (p Printer) Header(title string) { fmt.Fprintln(p.W, p.F.Header(title)) }

// Section writes a section divider followed by a blank line.
func (p Printer) Section(title string) { fmt.Fprintf(p.W, "\n%s\n\n", p.F.Section(title)) }

// Blank writes an empty line.
func (p Printer) Blank() { fmt.Fprintln(p.W) }
