package logs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger configures the process-wide slog logger. Diagnostics go to
// stderr so they never interleave with the report on stdout. In verbose mode
// every underlying query error is surfaced at debug level; otherwise only
// warnings and above are shown.
func ConsoleLogger(verbose bool) *slog.Logger {
	w := os.Stderr

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(w.Fd()),
	}))

	slog.SetDefault(logger)
	return logger
}
