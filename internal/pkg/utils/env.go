package utils

import (
	"log"
	"os"
	"strconv"
)

// GetEnvString returns the value of the environment variable or the fallback
// when it is unset.
func GetEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt falls back when the variable is unset or does not parse.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("cannot parse %s as int, using default: %v", key, err)
		return fallback
	}
	return parsed
}

// GetEnvBool falls back when the variable is unset or does not parse.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("cannot parse %s as bool, using default: %v", key, err)
		return fallback
	}
	return parsed
}

// GetEnvFloat falls back when the variable is unset or does not parse.
func GetEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("cannot parse %s as float, using default: %v", key, err)
		return fallback
	}
	return parsed
}
