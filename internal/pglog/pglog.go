// Package pglog is the toolkit's logging facade: a small Logger interface
// wrapping logrus, used only by cmd/ (the engine itself is silent — spec
// §5: no persisted state, no environment variables). Mirrors the
// teacher's logging package shape (Logger/StandardLogger/NoOpLogger plus
// a Level enum), implemented directly rather than aliased to an
// unreleased internal variant.
package pglog

import (
	"github.com/sirupsen/logrus"
)

// Level is a logging verbosity, ordered least to most verbose.
type Level int

const (
	Error Level = iota
	Warn
	Info
	Debug
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Logger is the interface cmd/ depends on; StandardLogger and NoOpLogger
// both implement it.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	WithFields(fields map[string]any) Logger
	SetLevel(Level)
	GetLevel() Level
}

// StandardLogger is the default logrus-backed Logger.
type StandardLogger struct {
	entry *logrus.Entry
}

// New returns a StandardLogger at Info level, logging to stderr in
// logrus's default text format.
func New() *StandardLogger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return &StandardLogger{entry: logrus.NewEntry(l)}
}

func (l *StandardLogger) Debug(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *StandardLogger) Info(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *StandardLogger) Warn(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *StandardLogger) Error(format string, args ...any) { l.entry.Errorf(format, args...) }

func (l *StandardLogger) WithFields(fields map[string]any) Logger {
	return &StandardLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *StandardLogger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(level.logrusLevel())
}

func (l *StandardLogger) GetLevel() Level {
	switch l.entry.Logger.GetLevel() {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return Error
	case logrus.WarnLevel:
		return Warn
	case logrus.InfoLevel:
		return Info
	default:
		return Debug
	}
}

// NoOpLogger discards everything, for library callers that don't want the
// toolkit logging at all.
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (*NoOpLogger) Debug(string, ...any) {}
func (*NoOpLogger) Info(string, ...any)  {}
func (*NoOpLogger) Warn(string, ...any)  {}
func (*NoOpLogger) Error(string, ...any) {}

func (l *NoOpLogger) WithFields(map[string]any) Logger { return l }
func (*NoOpLogger) SetLevel(Level)                     {}
func (*NoOpLogger) GetLevel() Level                     { return Error }
