package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger for the given APP_ENV.
// dev/development use a human-friendly console writer, test discards output,
// anything else writes JSON lines. level falls back to info when unparsable.
func NewLogger(env, level string) zerolog.Logger {
	var out io.Writer = os.Stdout
	switch env {
	case "dev", "development":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	case "test":
		out = io.Discard
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "hotel_booking").Logger()
}
