// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New returns a console logger in debug mode and a JSON logger otherwise. An
// unknown level falls back to info.
func New(w io.Writer, mode string, level string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if mode == "debug" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "tablero").Logger()
	if err != nil {
		log.Warn().Str("level", level).Msg("invalid log level, defaulting to info")
	}
	return log
}
