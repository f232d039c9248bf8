package config

import (
	"os"
	"time"
)

// parseEnv overlays configuration from environment variables. Invalid
// duration values are ignored so a bad variable cannot silently zero a
// default.
//
// Supported variables: ADDRESS, DATABASE_DSN, SESSION_VALIDITY,
// SESSION_CLEANUP_INTERVAL, ALLOWED_ORIGINS.
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SESSION_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.SessionValidityDuration = d
		}
	}
	if v := os.Getenv("SESSION_CLEANUP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.SessionCleanupInterval = d
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		config.AllowedOrigins = splitOrigins(v)
	}
}
