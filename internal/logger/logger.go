package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Params configures the process logger
type Params struct {
	Debug  bool
	Output io.Writer // defaults to stderr
}

var std = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

// Init replaces the process logger. Call once at startup before logging.
func Init(params Params) {
	out := params.Output
	if out == nil {
		out = os.Stderr
	}
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	std = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// Default returns the process logger
func Default() *log.Logger {
	return std
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) { std.Debug(message, keyvals...) }

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) { std.Info(message, keyvals...) }

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) { std.Warn(message, keyvals...) }

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) { std.Error(message, keyvals...) }

