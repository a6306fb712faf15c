// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Fatal(str string)
}

// Opt configures the logger returned by New.
type Opt func(l *logrus.Logger)

// WithDebug enables debug output.
func WithDebug() Opt {
	return func(l *logrus.Logger) {
		l.SetLevel(logrus.DebugLevel)
	}
}

// WithOutput redirects the log output to w.
func WithOutput(w io.Writer) Opt {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// New returns a Logger writing plain text to stderr at info level.
func New(opts ...Opt) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	for _, opt := range opts {
		opt(l)
	}

	return &logger{l}
}

type logger struct {
	*logrus.Logger
}

func (l *logger) Fatal(str string) {
	l.Logger.Fatal(str)
}
