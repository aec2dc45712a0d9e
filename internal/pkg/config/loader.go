// Package config provides fail-open environment loaders and validators.
// Loading never returns an error: an unset variable silently takes the
// default, an invalid one falls back to the default with a warning so a
// bad deploy degrades instead of crash-looping.
package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult is the outcome of loading one value. Value holds the
// typed result (assert to the expected type), Warnings holds one message
// per fallback applied.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString returns the variable's value, or the default when unset.
// No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string and validates it. A failing value
// falls back to the default with a warning. A nil validator accepts
// anything.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a Go duration string ("30s", "1h30m"). Parse or
// validation failure falls back to the default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, err, defaultValue)
	}
	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt loads an integer. Parse or validation failure falls back to
// the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	var parsed int
	if _, err := fmt.Sscanf(valueStr, "%d", &parsed); err != nil {
		return fallbackResult(envKey, valueStr, fmt.Errorf("invalid integer format"), defaultValue)
	}
	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool loads a boolean. Accepts the strconv.ParseBool forms
// ("1", "t", "true", "0", "f", "false" in any case); anything else falls
// back to the default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return ConfigLoadResult{Value: true}
	case "0", "f", "F", "false", "FALSE", "False":
		return ConfigLoadResult{Value: false}
	default:
		err := fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
		return fallbackResult(envKey, valueStr, err, defaultValue)
	}
}

func fallbackResult(envKey, raw string, err error, defaultValue interface{}) ConfigLoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, err, defaultValue)
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}
