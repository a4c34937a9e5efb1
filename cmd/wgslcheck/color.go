package main

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
)

// stdoutSupportsColor: a real terminal or a Cygwin pty gets ANSI
// escapes, a pipe or redirect gets plain text.
func stdoutSupportsColor() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorizeSeverity(sev diagnostics.Severity, text string) string {
	code := "0"
	switch sev {
	case diagnostics.SeverityError:
		code = "31" // red
	case diagnostics.SeverityWarning:
		code = "33" // yellow
	case diagnostics.SeverityInfo, diagnostics.SeverityHint:
		code = "36" // cyan
	}
	return "\x1b[" + code + "m" + text + "\x1b[0m"
}
