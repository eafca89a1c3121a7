// Package logging builds the logger shared by commands, backends and the
// controller.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used across the application.
// Both *logrus.Logger and *logrus.Entry implement it.
type Logger = logrus.FieldLogger

// New returns a text logger writing to w. The level is parsed from level
// ("debug", "info", "warn", ...); debug forces the debug level.
// Unknown levels fall back to warn.
func New(w io.Writer, level string, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil || level == "" {
		lvl = logrus.WarnLevel
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
