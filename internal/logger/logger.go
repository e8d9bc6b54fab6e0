package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns the service logger: readable console output in development,
// JSON everywhere else.
func New(environment string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if environment == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "ensured-billing").Logger()
}
