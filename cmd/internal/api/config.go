package api

import (
	"os"
	"strconv"
	"strings"
)

// Config carries HTTP-surface policy for the API handlers.
type Config struct {
	// MaxBodyBytes bounds every decoded request body.
	MaxBodyBytes int64
}

// DefaultConfig returns the API defaults.
func DefaultConfig() Config {
	return Config{MaxBodyBytes: 1 << 20}
}

// LoadConfigFromEnv reads Config from the environment with defaults.
//
// Optional:
//   - HABIT_API_MAX_BODY_BYTES
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("HABIT_API_MAX_BODY_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}
	return cfg
}
