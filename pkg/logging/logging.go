// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/backbee/bbinstall/pkg/defaults"
)

// Options control the handler installed by SetDefaultStructuredLoggerWithOptions.
type Options struct {
	// Level overrides LOG_LEVEL when non-nil.
	Level *slog.Level
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// ParseLogLevel maps debug, info, warn/warning and error to a slog level.
// Anything else yields slog.LevelInfo.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a logger tagged with the module name and version.
func NewStructuredLogger(name, version string, opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLogLevel(os.Getenv(defaults.LogLevelEnvName))
	if opts.Level != nil {
		level = *opts.Level
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, handlerOpts)
	} else {
		h = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(h).With(
		slog.String("module", name),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger installs a text logger on stderr as the slog default,
// with the level taken from LOG_LEVEL.
func SetDefaultStructuredLogger(name, version string) {
	SetDefaultStructuredLoggerWithOptions(name, version, Options{})
}

// SetDefaultStructuredLoggerWithOptions installs a logger built from opts as the slog default.
func SetDefaultStructuredLoggerWithOptions(name, version string, opts Options) {
	slog.SetDefault(NewStructuredLogger(name, version, opts))
}
