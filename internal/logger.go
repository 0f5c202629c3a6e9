package internal

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// newLogger builds the process logger: JSON lines by default, or the
// charmbracelet text handler for LogFormatText.
func newLogger(cfg ApplicationConfig, w io.Writer) *slog.Logger {
	if cfg.LogFormat == LogFormatText {
		return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			Level:           charmlog.Level(cfg.LogLevel),
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
}
