package seqconv

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewLogger returns a logger that writes to f at the given level, with
// colorized output if f is a terminal.
func NewLogger(f *os.File, level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(f.Fd()),
	}))
}

// NewJSONLogger returns a logger that writes to f in JSON format.
func NewJSONLogger(f *os.File, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
}
