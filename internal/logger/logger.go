package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"quiz-game/internal/quiz"
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Pretty bool      // human-readable console format
	Out    io.Writer // defaults to stderr
}

// New creates a logger. Unknown levels fall back to info.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Diagnostics logs loader diagnostics as warnings.
func Diagnostics(log zerolog.Logger, source string, diagnostics []quiz.Diagnostic) {
	for _, diag := range diagnostics {
		event := log.Warn().
			Str("source", source).
			Str("kind", diag.Kind)
		if diag.Record > 0 {
			event = event.Int("record", diag.Record)
		}
		if diag.Line > 0 {
			event = event.Int("line", diag.Line)
		}
		event.Msg(diag.Message)
	}
}
