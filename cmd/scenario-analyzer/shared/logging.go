// Package shared holds helpers common to the scenario-analyzer commands.
package shared

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupProgressLogger configures the human-facing progress logger used
// by long-running simulations.
func SetupProgressLogger(debug bool) *charmlog.Logger {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(charmlog.DebugLevel)
	}
	return logger
}
