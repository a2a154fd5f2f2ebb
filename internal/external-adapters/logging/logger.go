// Package logging adapts go-logr to the domain Logger interface.
package logging

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/ochairo/licensure/internal/domain/interfaces"
)

const loggerName = "licensure"

// Logger implements interfaces.Logger on top of a logr.Logger.
// Debug messages are emitted at V(1).
type Logger struct {
	log logr.Logger
}

// NewLogger creates a logfmt-style logger writing one line per entry to w
func NewLogger(w io.Writer, verbosity int) *Logger {
	return Wrap(funcr.New(lineWriter(w), funcr.Options{Verbosity: verbosity}))
}

// NewJSONLogger creates a logger writing one JSON object per entry to w
func NewJSONLogger(w io.Writer, verbosity int) *Logger {
	return Wrap(funcr.NewJSON(func(obj string) {
		_, _ = fmt.Fprintln(w, obj)
	}, funcr.Options{Verbosity: verbosity}))
}

// Wrap adapts an existing logr.Logger
func Wrap(log logr.Logger) *Logger {
	return &Logger{log: log.WithName(loggerName)}
}

func lineWriter(w io.Writer) func(prefix, args string) {
	return func(prefix, args string) {
		if prefix != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		_, _ = fmt.Fprintln(w, args)
	}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.log.V(1).Info(msg, keysAndValues(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.log.Info(msg, keysAndValues(fields)...)
}

// Warn logs warning messages. logr has no warning level, so they are
// tagged with severity=warning at V(0).
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.log.Info(msg, append([]any{"severity", "warning"}, keysAndValues(fields)...)...)
}

// Error logs error messages. A field named "error" holding an error
// becomes the logr error argument.
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	var err error
	rest := make([]interfaces.Field, 0, len(fields))
	for _, f := range fields {
		if e, ok := f.Value.(error); ok && f.Key == "error" && err == nil {
			err = e
			continue
		}
		rest = append(rest, f)
	}
	l.log.Error(err, msg, keysAndValues(rest)...)
}

func keysAndValues(fields []interfaces.Field) []any {
	kv := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}
