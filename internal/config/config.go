// Package config loads application configuration from environment variables.
//
// Everything the server needs is read once at startup into a Config struct
// and passed down explicitly — no package reads os.Getenv at request time.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port   int
	DBPath string

	// JWTSecret signs and verifies the session tokens whose "sub" claim
	// carries the caller's Clerk user ID. At least 16 characters; generate
	// one with `openssl rand -hex 32`.
	JWTSecret string

	// ClerkWebhookSecret is the svix signing secret ("whsec_...") for the
	// Clerk webhook endpoint. REQUIRED: serving the webhook route without
	// it would mean accepting unverifiable account events, so a missing
	// value is a startup failure, not a warning.
	ClerkWebhookSecret string
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse PORT: %w", err)
	}

	cfg := Config{
		Port:               port,
		DBPath:             getEnv("DB_PATH", "data/codecraft.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.ClerkWebhookSecret == "" {
		return fmt.Errorf("config: CLERK_WEBHOOK_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}
