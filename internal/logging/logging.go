// Package logging builds the structured logger used across the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level picks the minimum level from the common CLI flags.
// Warnings are shown by default, everything with debug, only errors with quiet.
func Level(debug, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a tint-backed logger writing to w.
// Colour is enabled only when w is a terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		NoColor:    !isTerminal(w),
		TimeFormat: time.Kitchen,
		Level:      level,
	})
	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
