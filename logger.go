package oak

import (
	"log/slog"
	"os"

	"github.com/oakui/oak/retained"
)

// SetLogger configures logging for oak and its sub-packages. By default oak
// produces no log output. Pass nil to restore the silent default.
//
// Levels used: Warn for tree-consistency defects and dropped events, Info
// for window lifecycle, Debug for dispatch and layout traces.
func SetLogger(l *slog.Logger) {
	retained.SetLogger(l)
}

// Logger returns the logger shared with the retained pipeline.
func Logger() *slog.Logger {
	return retained.Logger()
}

// applyLogLevel installs a stderr text logger at the configured level.
// An empty level keeps logging disabled.
func applyLogLevel(level string) {
	var lv slog.Level
	switch level {
	case "":
		return
	case "debug":
		lv = slog.LevelDebug
	case "info":
		lv = slog.LevelInfo
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		return
	}
	SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}
