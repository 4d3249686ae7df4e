// Package logging provides structured logging for syncnotes using zerolog.
// Console output is used when writing to a terminal and JSON output
// otherwise, so the same binary works interactively and under a scheduler.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("account", "MAIN").Msg("Loading notes")
//
//	// Carry the logger through a sync run
//	ctx := logging.WithLogger(context.Background(), log)
//	ctx = logging.WithAccount(ctx, "MAIN")
//	logging.FromContext(ctx).Debug().Int("realms", 3).Msg("Snapshot built")
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the global logger instance.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger creates a logger from LOG_* environment settings.
func createDefaultLogger() zerolog.Logger {
	cfg := ConfigFromEnv()
	if cfg.Level == "info" && os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	return NewLoggerFromConfig(cfg)
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}
