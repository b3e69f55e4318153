package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/shade-lang/shadec/internal/diagnostics"
)

// colorize reports whether w is a real terminal, so ANSI escapes only
// ever go to an actual terminal, never to a file or piped process.
func colorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31;1m"
	ansiYellow = "\x1b[33;1m"
	ansiBold   = "\x1b[1m"
)

func severityColor(s diagnostics.Severity) string {
	switch s {
	case diagnostics.Warning:
		return ansiYellow
	default:
		return ansiRed
	}
}

// renderDiagnostics writes every diagnostic to w as one block of lines
// (with no blank line between blocks), colorized if w is a real terminal.
func renderDiagnostics(w io.Writer, diags []diagnostics.Diagnostic) {
	color := colorize(w)
	for _, d := range diags {
		if color {
			fmt.Fprintf(w, "%s%s%s: %s\n", severityColor(d.Severity), d.Severity, ansiReset, d.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", d.Severity, d.Message)
		}
		if d.Code != diagnostics.CodeNone {
			fmt.Fprintf(w, "  [%s]\n", d.Code)
		}
		for _, l := range d.Labels {
			if color {
				fmt.Fprintf(w, "  %s-->%s %s: %s\n", ansiBold, ansiReset, l.Span, l.Text)
			} else {
				fmt.Fprintf(w, "  --> %s: %s\n", l.Span, l.Text)
			}
		}
	}
}
