// Package logger holds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the shared application logger.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures output format for the given app mode.
// Dev mode writes human readable lines, prod writes JSON.
func Init(mode string) {
	var out io.Writer = os.Stderr
	if mode == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}
	}
	Log = zerolog.New(out).With().Timestamp().Str("service", "diamond-store-admin").Logger()
}

// SetLevel sets the global log level, falling back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
