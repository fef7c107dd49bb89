package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// logColors reports whether w is a color-capable terminal.
func logColors(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

// newLogger builds the stderr logger. Quiet keeps warnings and errors,
// verbose adds debug output.
func newLogger(out io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}

	return slog.New(tint.NewHandler(out, &tint.Options{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if _, ok := attr.Value.Any().(error); attr.Key == "err" || ok {
				return tint.Attr(9, attr)
			}
			return attr
		},
		TimeFormat: time.TimeOnly,
		NoColor:    !logColors(out),
	}))
}

// maxprocsLogger adapts slog to the printf-style logger automaxprocs wants.
func maxprocsLogger(logger *slog.Logger) func(string, ...any) {
	return func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
}
