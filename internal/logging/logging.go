// Package logging builds the zerolog loggers used across the module.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a logger writing to w at the given level. When jsonOutput is
// false the output is a human readable console format.
// An unparseable level falls back to DefaultLevel.
func New(w io.Writer, level string, jsonOutput bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl, _ = zerolog.ParseLevel(DefaultLevel)
	}

	out := w
	if !jsonOutput {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Component returns a sub-logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
