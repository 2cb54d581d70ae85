// Package log wraps [log/slog] with package-level helpers, a configurable
// default handler, and the Println/Printf adapters required by the MQTT
// client's logging hooks.
package log

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
)

type (
	Attr    = slog.Attr
	Handler = slog.Handler
)

// DiscardHandler discards all log output.
var DiscardHandler = slog.DiscardHandler

// Logger is the interface expected by the MQTT client's ERROR, WARN, and
// DEBUG hooks.
type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
}

var (
	level         slog.LevelVar
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))
)

// SetLogLevel sets the minimum level of the default handlers.
func SetLogLevel(l Level) {
	level.Set(slog.Level(l))
}

// SetHandler sets the default logger's handler to the one given.
func SetHandler(h Handler) {
	defaultLogger = slog.New(h)
}

// SetTextHandler sets the default logger's handler to a text handler
// writing to w at the level set by [SetLogLevel].
func SetTextHandler(w io.Writer) {
	SetHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetJSONHandler sets the default logger's handler to a JSON handler
// writing to w at the level set by [SetLogLevel].
func SetJSONHandler(w io.Writer) {
	SetHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetOutput sets the output of the standard library logger, used by
// packages that log through [log.Printf].
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Debug logs at [LevelDebug].
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs at [LevelInfo].
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs at [LevelWarn].
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs at [LevelError]. A non-nil err is prepended to args as the
// "cause" attribute.
func Error(msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{"cause", err}, args...)
	}
	defaultLogger.Error(msg, args...)
}

// Fatal logs at [LevelError] and exits the process.
func Fatal(msg string, err error, args ...any) {
	Error(msg, err, args...)
	os.Exit(1)
}

type debugLogger struct{}

// DebugLogger returns a [Logger] that logs at [LevelDebug].
func DebugLogger() Logger {
	return debugLogger{}
}

func (debugLogger) Println(v ...any)               { Debug(fmt.Sprintln(v...)) }
func (debugLogger) Printf(format string, v ...any) { Debug(fmt.Sprintf(format, v...)) }

type warnLogger struct{}

// WarnLogger returns a [Logger] that logs at [LevelWarn].
func WarnLogger() Logger {
	return warnLogger{}
}

func (warnLogger) Println(v ...any)               { Warn(fmt.Sprintln(v...)) }
func (warnLogger) Printf(format string, v ...any) { Warn(fmt.Sprintf(format, v...)) }

type errorLogger struct{}

// ErrorLogger returns a [Logger] that logs at [LevelError].
func ErrorLogger() Logger {
	return errorLogger{}
}

func (errorLogger) Println(v ...any)               { defaultLogger.Error(fmt.Sprintln(v...)) }
func (errorLogger) Printf(format string, v ...any) { defaultLogger.Error(fmt.Sprintf(format, v...)) }
