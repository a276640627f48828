package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Development gets a human
// console writer, everything else stays JSON.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// LogOutcome records the result of a handler operation at a level matching
// the status code.
func LogOutcome(email *string, statusCode int, operation string, err error) {
	who := "unknown"
	if email != nil {
		who = *email
	}

	evt := log.Info()
	switch {
	case statusCode >= 500:
		evt = log.Error()
	case statusCode >= 400:
		evt = log.Warn()
	}
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Str("user", who).Int("status", statusCode).Str("operation", operation).Send()
}
