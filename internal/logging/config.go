// Package logging configures the process-wide zerolog logger exactly once.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "LLRPC_LOG_LEVEL"
	EnvLogTimestamp = "LLRPC_LOG_TIMESTAMP"
	EnvLogNoColor   = "LLRPC_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type config struct {
	level     zerolog.Level
	timestamp bool
	noColor   bool
}

var configureOnce sync.Once

func ConfigureRuntime() zerolog.Logger {
	return Configure(ProfileRuntime)
}

func ConfigureTests() zerolog.Logger {
	return Configure(ProfileTest)
}

// Configure installs the global logger for the given profile. Later calls
// are no-ops and return the already-installed logger.
func Configure(profile Profile) zerolog.Logger {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)

		writer := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.noColor,
		}
		ctx := zerolog.New(writer).Level(cfg.level).With().Str("app", "llrpcd")
		if cfg.timestamp {
			ctx = ctx.Timestamp()
		}
		log.Logger = ctx.Logger()
	})
	return log.Logger
}

func defaultConfig(profile Profile) config {
	switch profile {
	case ProfileTest:
		return config{level: zerolog.DebugLevel, timestamp: false, noColor: true}
	default:
		return config{level: zerolog.InfoLevel, timestamp: true}
	}
}

func applyEnvOverrides(cfg *config) {
	if raw, ok := os.LookupEnv(EnvLogLevel); ok {
		if level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw))); err == nil {
			cfg.level = level
		}
	}
	if raw, ok := os.LookupEnv(EnvLogTimestamp); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.timestamp = v
		}
	}
	if raw, ok := os.LookupEnv(EnvLogNoColor); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.noColor = v
		}
	}
}
