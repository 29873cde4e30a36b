package config

import (
	"fmt"
	"os"
	"strings"
)

// AuthConfig holds configuration for verifying identity-provider tokens.
// Either Secret (HS256) or PublicKeyPEM (RS256) must be set.
type AuthConfig struct {
	Secret          string
	PublicKeyPEM    string
	Issuer          string
	ExpirationHours int
}

// NewAuthConfig creates an auth configuration from environment variables.
// It reads JWT_SECRET, JWT_PUBLIC_KEY, JWT_ISSUER and JWT_EXPIRATION_HOURS (default: 24).
// JWT_EXPIRATION_HOURS only applies to development tokens minted by the CLI.
func NewAuthConfig() (*AuthConfig, error) {
	expirationHours, err := envInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg := &AuthConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		PublicKeyPEM:    strings.ReplaceAll(os.Getenv("JWT_PUBLIC_KEY"), `\n`, "\n"),
		Issuer:          strings.TrimSpace(os.Getenv("JWT_ISSUER")),
		ExpirationHours: expirationHours,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AuthConfig) normalize() error {
	if c.Secret == "" && c.PublicKeyPEM == "" {
		return fmt.Errorf("one of JWT_SECRET or JWT_PUBLIC_KEY is required")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
