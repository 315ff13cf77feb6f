package wampclient

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger is silent unless WAMPCLIENT_DEBUG is set in the
// environment, so importing this package never produces unsolicited
// output.
func defaultLogger() zerolog.Logger {
	if os.Getenv("WAMPCLIENT_DEBUG") == "" {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger()
}
