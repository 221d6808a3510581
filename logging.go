package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger carries diagnostics; user-facing progress goes through the workspace writer.
var Logger zerolog.Logger

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "XB_LOG_LEVEL"

// parseLevel maps DEBUG, INFO, WARN, ERROR (any case) to a zerolog level.
// Unrecognized values fall back to warn.
func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// logSettings applies the LogLevelEnv override found in env, which already
// includes the .env overlay.
func logSettings(cfg LogSettings, env *Environment) LogSettings {
	if level := env.Get(LogLevelEnv); level != "" {
		cfg.Level = level
	}
	return cfg
}

func initLogging(cfg LogSettings, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	if out != io.Discard && cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	Logger = zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

func init() {
	initLogging(LogSettings{Level: "warn"}, os.Stderr)
}
