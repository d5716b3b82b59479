package config

import (
	"io"

	"github.com/NielsdaWheelz/vaultsetup/internal/ui"
)

func plainPrinter(w io.Writer) ui.Printer {
	return ui.Printer{W: w, F: ui.Formatter{}}
}
