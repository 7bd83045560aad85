// Package env reads configuration defaults from environment variables.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Val will attempt to get an environment variable value using the given key.
// If the variable isn't set, or is blank, then the defaultVal will be returned.
// Note that keys are compared case-insensitive, and the first match in the environment wins.
func Val(key string, defaultVal string) string {
	for _, kv := range os.Environ() {
		k, v, found := strings.Cut(kv, "=")
		if !found || !strings.EqualFold(k, key) {
			continue
		}
		if trimmed := strings.TrimSpace(v); len(trimmed) > 0 {
			return trimmed
		}
		return defaultVal
	}
	return defaultVal
}

var (
	DefaultTrue  = []string{"1", "yes", "true", "on"}  // DefaultTrue are the values considered "true" when using [Bool].
	DefaultFalse = []string{"0", "no", "false", "off"} // DefaultFalse are the values considered "false" when using [Bool].
)

// Bool interprets an environment variable as a boolean, using [DefaultTrue] and [DefaultFalse].
// The defaultVal will be returned if the variable isn't set, is blank, or can't be a boolean value.
func Bool(key string, defaultVal bool) bool {
	sval := Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	for _, v := range DefaultTrue {
		if strings.EqualFold(sval, v) {
			return true
		}
	}
	for _, v := range DefaultFalse {
		if strings.EqualFold(sval, v) {
			return false
		}
	}
	return defaultVal
}

// Int will attempt to interpret an environment variable as an integer, returning the defaultVal if the environment variable isn't found or can't be a valid integer.
func Int(key string, defaultVal int64) int64 {
	sval := Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	ival, err := strconv.ParseInt(sval, 10, 64)
	if err != nil {
		return defaultVal
	}
	return ival
}

// Duration will attempt to interpret an environment variable as a [time.Duration], returning the defaultVal if the environment variable isn't found or can't be a valid [time.Duration].
func Duration(key string, defaultVal time.Duration) time.Duration {
	sval := Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	dval, err := time.ParseDuration(sval)
	if err != nil {
		return defaultVal
	}
	return dval
}
