package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger is the capability handed to the calculator and matching engine,
// rather than having them write to ambient globals. Tests inject a
// NullLogger to keep output deterministic.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "?"
}

// BasicLogger writes leveled lines to a single io.Writer.
type BasicLogger struct {
	Level Level
	Out   io.Writer
	mu    sync.Mutex
}

func NewBasicLogger(level Level) *BasicLogger {
	return &BasicLogger{Level: level, Out: os.Stderr}
}

func (l *BasicLogger) logf(level Level, format string, v ...interface{}) {
	if level < l.Level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.Out, "[%s] %s\n", level, fmt.Sprintf(format, v...))
}

func (l *BasicLogger) Debugf(format string, v ...interface{}) {
	l.logf(LevelDebug, format, v...)
}

func (l *BasicLogger) Infof(format string, v ...interface{}) {
	l.logf(LevelInfo, format, v...)
}

func (l *BasicLogger) Warnf(format string, v ...interface{}) {
	l.logf(LevelWarn, format, v...)
}

func (l *BasicLogger) Errorf(format string, v ...interface{}) {
	l.logf(LevelError, format, v...)
}

// NullLogger discards everything.
type NullLogger struct{}

func (NullLogger) Debugf(format string, v ...interface{}) {}
func (NullLogger) Infof(format string, v ...interface{})  {}
func (NullLogger) Warnf(format string, v ...interface{})  {}
func (NullLogger) Errorf(format string, v ...interface{}) {}

type ErrorPrinter interface {
	Ln(v ...interface{})
	F(format string, v ...interface{})
}

// The default ErrorPrinter
type StderrErrorPrinter struct{}

func (p *StderrErrorPrinter) Ln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func (p *StderrErrorPrinter) F(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
