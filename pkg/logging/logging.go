// Package logging configures the process-wide structured logger. Output
// goes to stderr so command results on stdout stay machine-parseable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls log output. The zero value logs Info and above as text.
type Config struct {
	Level   string // debug, info, warn, error
	JSON    bool   // machine-parseable output
	Quiet   bool   // discard everything
	Service string // attached to every record as "service"
}

// New builds a logger from the config.
func New(cfg Config) *slog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Quiet {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}

	return slog.New(handler)
}

// Default returns a text logger at Info level.
func Default() *slog.Logger {
	return New(Config{})
}

// ParseLevel maps a level name to slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
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
