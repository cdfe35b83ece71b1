// Package logger builds the process-wide zerolog logger. Services derive
// component sub-loggers from it with .With().Str("component", ...).
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON to stdout, or a human console writer
// when console is set (local development). level falls back to info when it
// does not parse.
func New(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if console {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(lvl).With().
		Timestamp().
		Str("service", "minifoot-api").
		Logger()
}
