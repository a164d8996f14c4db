package common

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// Logger wraps log.Logger to provide a consistent interface
type Logger struct {
	log.Logger
}

// parseLevel maps a config level onto a phuslu level. The second return
// value is false for "disabled"/"off".
func parseLevel(level string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel, true
	case "debug":
		return log.DebugLevel, true
	case "info", "":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	case "disabled", "off", "none":
		return log.PanicLevel, false
	default:
		return log.InfoLevel, true
	}
}

// NewLoggerFromConfig builds a logger from the [logging] config section.
// A file_path routes output to a rotating file instead of stderr.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level, enabled := parseLevel(cfg.Level)
	if !enabled {
		return NewSilentLogger()
	}

	var writer log.Writer
	switch {
	case cfg.FilePath != "":
		writer = &log.FileWriter{
			Filename:     cfg.FilePath,
			MaxSize:      int64(cfg.MaxSizeMB) * 1024 * 1024,
			MaxBackups:   cfg.MaxBackups,
			EnsureFolder: true,
		}
	case strings.EqualFold(cfg.Format, "json"):
		writer = log.IOWriter{Writer: os.Stderr}
	default:
		writer = &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: true,
		}
	}

	return &Logger{Logger: log.Logger{
		Level:      level,
		TimeFormat: time.RFC3339,
		Writer:     writer,
	}}
}

// NewLoggerWithOutput creates a JSON logger writing to a specific output
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	lvl, enabled := parseLevel(level)
	if !enabled {
		return NewSilentLogger()
	}
	return &Logger{Logger: log.Logger{
		Level:      lvl,
		TimeFormat: time.RFC3339,
		Writer:     log.IOWriter{Writer: w},
	}}
}

// NewDefaultLogger creates a logger with default settings
func NewDefaultLogger() *Logger {
	return NewLoggerFromConfig(LoggingConfig{Level: "info"})
}

// NewSilentLogger creates a logger that discards all output
func NewSilentLogger() *Logger {
	return &Logger{Logger: log.Logger{
		Level:  log.PanicLevel,
		Writer: log.IOWriter{Writer: io.Discard},
	}}
}
