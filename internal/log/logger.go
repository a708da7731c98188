package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Log output formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// levelFor returns Debug in verbose mode and Warn otherwise.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger creates a new slog.Logger with secure handling.
// The logger sanitizes sensitive information in all log output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return newTextLogger(w, levelFor(verbose))
}

// NewSecureJSONLogger creates a new slog.Logger with secure handling
// that outputs JSON format. Useful for structured log aggregation.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return newJSONLogger(w, levelFor(verbose))
}

// NewSecurePrettyLogger creates a new slog.Logger with secure handling
// that writes colorized, human-oriented lines through charmbracelet/log.
// Intended for running the server in a terminal.
func NewSecurePrettyLogger(w io.Writer, verbose bool) *slog.Logger {
	return newPrettyLogger(w, levelFor(verbose))
}

// NewSecureLoggerWithFormat creates a secure logger in the named format:
// "text" (default when empty), "json" or "pretty".
func NewSecureLoggerWithFormat(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	return NewSecureLoggerWithLevel(w, format, levelFor(verbose))
}

// NewSecureLoggerWithLevel is NewSecureLoggerWithFormat with an explicit
// minimum level. Long-running commands use it to keep Info records.
func NewSecureLoggerWithLevel(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return newTextLogger(w, level), nil
	case FormatJSON:
		return newJSONLogger(w, level), nil
	case FormatPretty:
		return newPrettyLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: expected text, json or pretty", format)
	}
}

func newTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(textHandler))
}

func newJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSecureHandler(jsonHandler))
}

// newPrettyLogger maps level onto charmbracelet/log, whose level values
// match slog's.
func newPrettyLogger(w io.Writer, level slog.Level) *slog.Logger {
	pretty := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "phishscore",
	})

	return slog.New(NewSecureHandler(pretty))
}
