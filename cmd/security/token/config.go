package token

import (
	"os"
	"strings"
	"time"
)

// Config carries the signing key and issuance policy for bearer tokens.
//
// The key is loaded once at process start and injected here; nothing in this
// package reads ambient global state after construction.
type Config struct {
	// Issuer is stamped into the "iss" claim and enforced on verification.
	Issuer string

	// TTL is the fixed lifetime of every issued token.
	TTL time.Duration

	// ClockSkew is tolerated on the not-before check during verification.
	ClockSkew time.Duration

	// KeyHex is the hex-encoded 32-byte symmetric key.
	KeyHex string
}

// DefaultConfig returns the issuance policy used when env overrides are absent.
// The key has no default; it must always be provided.
func DefaultConfig() Config {
	return Config{
		Issuer:    "habitd",
		TTL:       24 * time.Hour,
		ClockSkew: 30 * time.Second,
	}
}

// LoadConfigFromEnv builds a Config from the environment.
//
// Required:
//   - HABIT_TOKEN_KEY_HEX (hex-encoded 32-byte key)
//
// Optional:
//   - HABIT_TOKEN_ISSUER
//   - HABIT_TOKEN_TTL (Go duration)
//   - HABIT_TOKEN_CLOCK_SKEW (Go duration)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("HABIT_TOKEN_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if v := strings.TrimSpace(os.Getenv("HABIT_TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TTL = d
	}

	if v := strings.TrimSpace(os.Getenv("HABIT_TOKEN_CLOCK_SKEW")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.ClockSkew = d
	}

	cfg.KeyHex = strings.TrimSpace(os.Getenv("HABIT_TOKEN_KEY_HEX"))
	if cfg.KeyHex == "" {
		return Config{}, ErrConfig
	}

	return cfg, nil
}
