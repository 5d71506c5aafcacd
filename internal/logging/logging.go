// Package logging wires the slp.Logger interface to a concrete
// charmbracelet/log logger, keeping the decoder itself free of any
// dependency on the presentation of its own diagnostics.
package logging

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/jimlah42/slippc/slp"
)

// New builds an slp.Logger backed by charmbracelet/log, writing to
// stderr with the given minimum level ("debug", "info", "warn",
// "error"). An unrecognized level falls back to "info".
func New(level string) slp.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "slippc",
	})
	l.SetLevel(parseLevel(level))
	return &charmLogger{l}
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type charmLogger struct {
	l *log.Logger
}

func (c *charmLogger) Warnf(format string, args ...any) {
	c.l.Warnf(format, args...)
}

func (c *charmLogger) Debugf(format string, args ...any) {
	c.l.Debugf(format, args...)
}
