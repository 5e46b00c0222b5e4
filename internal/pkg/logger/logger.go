package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"clinic/internal/config"
)

// New builds the application logger. Unknown levels fall back to info.
func New(cfg config.LogConfig, appEnv string) zerolog.Logger {
	return NewWithWriter(cfg, appEnv, os.Stdout)
}

func NewWithWriter(cfg config.LogConfig, appEnv string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "clinic-api").
		Str("env", appEnv).
		Logger()
}
