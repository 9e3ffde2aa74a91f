// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// newLogger returns a slog logger backed by charmbracelet/log writing to w.
// Terminals get the styled text formatter, everything else logfmt.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix: "jarrunner",
		Level:  level,
	})
	if !isTerminal(w) {
		logger.SetFormatter(log.LogfmtFormatter)
	}

	return slog.New(logger)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
