package config

import (
	"os"
	"strings"
)

// GetSecret resolves a secret from, in order:
//  1. the environment variable itself (FUNCTION_KEYS=key-a,key-b)
//  2. a file named by the variable with a _FILE suffix (FUNCTION_KEYS_FILE=/run/secrets/function_keys)
//  3. defaultValue
//
// File contents are trimmed of surrounding whitespace. An unreadable file falls through to the default.
func GetSecret(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}

	path := os.Getenv(envVar + "_FILE")
	if path == "" {
		return defaultValue
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultValue
	}
	if value := strings.TrimSpace(string(data)); value != "" {
		return value
	}
	return defaultValue
}
