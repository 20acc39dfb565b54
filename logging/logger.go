// Package logging provides the structured logger used across go-scryptc.
// Each package creates its own sub-logger off the global one, so log lines
// stay attributable to the component that emitted them.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default. Each package
// should create its own sub-logger off it, so logging stays attributable and
// a host application can enable output for the whole module in one place.
var GlobalLogger = NewLogger(zerolog.Disabled)

// Logger wraps a zerolog logger with variadic-argument events that may carry
// an error and structured context alongside plain message parts.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// logger is the underlying zerolog logger events are emitted through.
	logger zerolog.Logger

	// writers describes the io.Writer objects where log output is sent.
	writers []io.Writer
}

// StructuredLogInfo describes a key-value mapping that can be used to log
// structured data alongside a message.
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level that
// writes to any number of arbitrary io.Writer channels.
func NewLogger(level zerolog.Level, writers ...io.Writer) *Logger {
	// Without writers the logger stays disabled; instantiating it anyway
	// avoids nil dereferences for packages that log unconditionally.
	base := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	if len(writers) > 0 {
		base = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}

	return &Logger{
		level:   level,
		logger:  base,
		writers: writers,
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a
// key-value pair. The expected use is for each package to have its own logger
// so that parsing of logs is "grep-able" based on some key.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	return &Logger{
		level:   l.level,
		logger:  l.logger.With().Str(key, value).Logger(),
		writers: l.writers,
	}
}

// AddWriter will add a writer to the list of channels where log output is
// sent. Adding a writer that is already registered is a no-op.
func (l *Logger) AddWriter(writer io.Writer) {
	for _, w := range l.writers {
		if writer == w {
			return
		}
	}
	l.writers = append(l.writers, writer)
	l.logger = zerolog.New(zerolog.MultiLevelWriter(l.writers...)).Level(l.level).With().Timestamp().Logger()
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.logger = l.logger.Level(level)
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.emit(l.logger.Trace(), args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.emit(l.logger.Debug(), args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.emit(l.logger.Info(), args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.emit(l.logger.Warn(), args...)
}

// Error is a wrapper function that will log an error event
func (l *Logger) Error(args ...any) {
	l.emit(l.logger.Error(), args...)
}

// Panic is a wrapper function that will log a panic event
func (l *Logger) Panic(args ...any) {
	l.emit(l.logger.Panic(), args...)
}

// emit builds one log event out of a variadic argument list: at most one
// error and one StructuredLogInfo are chained onto the event, every other
// argument becomes part of the message.
func (l *Logger) emit(event *zerolog.Event, args ...any) {
	message := ""
	for _, arg := range args {
		switch t := arg.(type) {
		case error:
			// Note that only one error can be provided for each log message
			event = event.Stack().Err(t)
		case StructuredLogInfo:
			// Note that only one structured log info can be provided for each log message
			for k, v := range t {
				event = event.Interface(k, v)
			}
		case string:
			if message != "" {
				message += " "
			}
			message += t
		default:
			event = event.Interface("context", t)
		}
	}
	event.Msg(message)
}
