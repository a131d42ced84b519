// Package logging configures the process-wide logger used outside of individual tests.
package logging

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const consoleTimeFormat = "15:04:05.000"

var setupOnce sync.Once

// setup makes .Stack() on an error event log the stack recorded when the error was created
// with github.com/pkg/errors. Errors without a recorded stack are logged without one.
func setup() {
	setupOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	})
}

// New returns a logger that writes human-readable lines to out. Debug and trace events are
// dropped unless debug is true.
func New(out io.Writer, debug bool) zerolog.Logger {
	setup()
	return zerolog.New(NewConsoleWriter(out, false)).Level(level(debug)).With().Timestamp().Logger()
}

// NewJSON returns a logger that writes one JSON object per event, for when the output is
// consumed by another program.
func NewJSON(out io.Writer, debug bool) zerolog.Logger {
	setup()
	return zerolog.New(out).Level(level(debug)).With().Timestamp().Logger()
}

// NewConsoleWriter returns the writer used for console output.
func NewConsoleWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: consoleTimeFormat,
	}
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
