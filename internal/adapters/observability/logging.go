package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger.
// APP_ENV=dev (or development) uses a human-friendly console writer and debug level.
func NewLogger(env string) zerolog.Logger {
	l := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	if IsDev(env) {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
	return l
}

func IsDev(env string) bool { return env == "dev" || env == "development" }
