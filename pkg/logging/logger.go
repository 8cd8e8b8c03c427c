// Package logging configures structured loggers backed by log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Options describe how to configure a logger instance.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New creates a structured logger backed by Go's slog package.
func New(opts Options) (*slog.Logger, error) {
	lvl, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceTimeAttr,
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	var handler slog.Handler
	switch format {
	case "", "text", "console":
		handler = slog.NewTextHandler(out, &handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(out, &handlerOpts)
	default:
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}

	return slog.New(handler), nil
}

// ForVerbosity maps the CLI verbosity flags onto a text logger: verbose
// enables debug output, quiet restricts to errors, and the default sits
// at warn so routine captures stay silent on stderr.
func ForVerbosity(verbose, quiet bool, out io.Writer) *slog.Logger {
	level := "warn"
	switch {
	case quiet:
		level = "error"
	case verbose:
		level = "debug"
	}
	logger, err := New(Options{Level: level, Format: "text", Output: out})
	if err != nil {
		return slog.New(slog.NewTextHandler(out, nil))
	}
	return logger
}

func parseLevel(level string) (slog.Leveler, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unsupported log level %q", level)
	}

	var levelVar slog.LevelVar
	levelVar.Set(lvl)
	return &levelVar, nil
}

func replaceTimeAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.TimeKey && attr.Value.Kind() == slog.KindTime {
		attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
	}
	return attr
}
