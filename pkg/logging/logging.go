// Package logging builds the structured logger used by bookdb.
//
// Diagnostics go to stderr through a tint handler so they never mix with the
// tables and prompts written to stdout. Colour is only enabled when the
// destination is a terminal. Every record carries a session attribute, a
// KSUID generated once per process, so lines from one run can be grouped.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/segmentio/ksuid"
)

// Options controls logger construction
type Options struct {
	// Writer defaults to stderr
	Writer io.Writer
	// Level is one of debug, info, warn, error; anything else means info
	Level string
	// NoColor forces plain output even on a terminal
	NoColor bool
	// SessionID overrides the generated session id
	SessionID string
}

// New returns a logger configured from opts
func New(opts Options) *slog.Logger {
	w := opts.Writer
	noColor := opts.NoColor
	if w == nil {
		w = colorable.NewColorable(os.Stderr)
		noColor = noColor || !isatty.IsTerminal(os.Stderr.Fd())
	} else if f, ok := w.(*os.File); ok {
		noColor = noColor || !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	} else {
		// Buffers and pipes never get escape codes
		noColor = true
	}

	session := opts.SessionID
	if session == "" {
		session = NewSessionID()
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(opts.Level),
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Zero durations add noise to debug lines
			if d, ok := a.Value.Any().(time.Duration); ok && d == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	return slog.New(handler).With("session", session)
}

// NewSessionID returns a new sortable unique id for one process run
func NewSessionID() string {
	return ksuid.New().String()
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
