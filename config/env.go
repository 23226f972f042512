package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvString reads an environment variable, reporting whether it was set.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment variable.
func EnvInt(key string) (int, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s=%q: %w", key, value, err)
	}
	return parsed, true, nil
}

// EnvBool reads a boolean environment variable.
func EnvBool(key string) (bool, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return false, false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, fmt.Errorf("parse %s=%q: %w", key, value, err)
	}
	return parsed, true, nil
}

// EnvDuration reads a duration environment variable ("10s", "1m", ...).
func EnvDuration(key string) (time.Duration, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s=%q: %w", key, value, err)
	}
	return parsed, true, nil
}
