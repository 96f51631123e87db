package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aditi/profilecore/internal/config"
)

// New builds a zerolog.Logger configured according to the provided logging
// config. The text format uses the human-readable console writer; json emits
// structured lines for log shipping.
func New(cfg config.LoggingConfig) zerolog.Logger {
	var w io.Writer = os.Stdout
	if !strings.EqualFold(cfg.Format, "json") {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
