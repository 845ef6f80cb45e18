package cmd

import (
	"log/slog"
	"os"
)

// initLogger configures the shared slog logger for the long-running
// commands and routes the stdlib log package through it too.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}
