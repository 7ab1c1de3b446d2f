package logging

import (
	"fmt"
	"log"
	"strings"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLogLevel translates a string representation of a log level into a log level enum.
// Unrecognized names produce an error.
func ParseLogLevel(name string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TraceLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger writes messages at or above a minimum level through a standard library logger
type Logger struct {
	level  int
	source string
	out    *log.Logger
}

// NewLogger creates a Logger which discards messages below level. A nil out writes to the standard logger.
func NewLogger(source string, level int, out *log.Logger) *Logger {
	if out == nil {
		out = log.Default()
	}
	return &Logger{level: level, source: source, out: out}
}

// Level returns the minimum level of this Logger
func (l *Logger) Level() int {
	return l.level
}

// Logf formats and writes a message at the given level
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.out.Printf("%s: [%s] %s", l.source, LogLevelToString(level), fmt.Sprintf(format, args...))
}

// Debugf writes a message at DebugLevel
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(DebugLevel, format, args...)
}

// Infof writes a message at InfoLevel
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(InfoLevel, format, args...)
}

// Warnf writes a message at WarnLevel
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logf(WarnLevel, format, args...)
}

// Errorf writes a message at ErrorLevel
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(ErrorLevel, format, args...)
}
