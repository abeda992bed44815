// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/dagskra/internal/log"
)

const (
	sourceEnvironment = "environment"
	sourceDefault     = "default"
)

func envLogger() zerolog.Logger {
	return log.WithComponent("config")
}

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(envLogger(), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		lowerKey := strings.ToLower(key)
		switch {
		case value == "":
			logger.Debug().
				Str(log.FieldKey, key).
				Str("default", defaultValue).
				Str(log.FieldSource, sourceDefault).
				Msg("using default value (environment variable is empty)")
			return defaultValue
		case strings.Contains(lowerKey, "token") || strings.Contains(lowerKey, "password"):
			logger.Debug().
				Str(log.FieldKey, key).
				Str(log.FieldSource, sourceEnvironment).
				Bool("sensitive", true).
				Msg("using environment variable")
		default:
			logger.Debug().
				Str(log.FieldKey, key).
				Str("value", value).
				Str(log.FieldSource, sourceEnvironment).
				Msg("using environment variable")
		}
		return value
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Str("default", defaultValue).
		Str(log.FieldSource, sourceDefault).
		Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from environment variable or returns default value.
// It validates the input and falls back to default on parse errors.
func ParseInt(key string, defaultValue int) int {
	logger := envLogger()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			logger.Debug().
				Str(log.FieldKey, key).
				Int("value", i).
				Str(log.FieldSource, sourceEnvironment).
				Msg("using environment variable")
			return i
		}
		logger.Warn().
			Str(log.FieldKey, key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Int("default", defaultValue).
		Str(log.FieldSource, sourceDefault).
		Msg("using default value")
	return defaultValue
}

// ParseDuration reads a duration from environment variable in Go duration format (e.g. "5s").
// It falls back to default on parse errors or empty variables and logs the choice.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	logger := envLogger()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			logger.Debug().
				Str(log.FieldKey, key).
				Dur("value", d).
				Str(log.FieldSource, sourceEnvironment).
				Msg("using environment variable")
			return d
		}
		logger.Warn().
			Str(log.FieldKey, key).
			Str("value", v).
			Dur("default", defaultValue).
			Msg("invalid duration in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Dur("default", defaultValue).
		Str(log.FieldSource, sourceDefault).
		Msg("using default value")
	return defaultValue
}

// ParseBool reads a boolean from environment variable or returns default value.
// It accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func ParseBool(key string, defaultValue bool) bool {
	logger := envLogger()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			logger.Debug().
				Str(log.FieldKey, key).
				Bool("value", true).
				Str(log.FieldSource, sourceEnvironment).
				Msg("using environment variable")
			return true
		case "false", "0", "no":
			logger.Debug().
				Str(log.FieldKey, key).
				Bool("value", false).
				Str(log.FieldSource, sourceEnvironment).
				Msg("using environment variable")
			return false
		default:
			logger.Warn().
				Str(log.FieldKey, key).
				Str("value", v).
				Bool("default", defaultValue).
				Msg("invalid boolean in environment variable, using default")
			return defaultValue
		}
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Bool("default", defaultValue).
		Str(log.FieldSource, sourceDefault).
		Msg("using default value")
	return defaultValue
}

// ParseFloat reads a float64 from environment variable or returns default value.
func ParseFloat(key string, defaultValue float64) float64 {
	logger := envLogger()
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			logger.Debug().
				Str(log.FieldKey, key).
				Float64("value", f).
				Str(log.FieldSource, sourceEnvironment).
				Msg("using environment variable")
			return f
		}
		logger.Warn().
			Str(log.FieldKey, key).
			Str("value", v).
			Float64("default", defaultValue).
			Msg("invalid float in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Float64("default", defaultValue).
		Str(log.FieldSource, sourceDefault).
		Msg("using default value")
	return defaultValue
}
