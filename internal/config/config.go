// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds settings for the HTTP API process.
type ServerConfig struct {
	Port        int
	DatabaseURL string
	LogMode     string
	LogHashSalt string
	CORSOrigin  string
	// Location is the reporting timezone used for week boundaries,
	// checklist days and history grouping.
	Location *time.Location
}

// NewServerConfig reads PORT (default 4000), DATABASE_URL (required),
// LOG_MODE (default "development"), LOG_HASH_SALT, CORS_ORIGIN (default "*")
// and TIMEZONE (default "Local").
func NewServerConfig() (*ServerConfig, error) {
	port, err := envInt("PORT", 4000)
	if err != nil {
		return nil, err
	}

	loc, err := loadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogMode:     envString("LOG_MODE", "development"),
		LogHashSalt: os.Getenv("LOG_HASH_SALT"),
		CORSOrigin:  envString("CORS_ORIGIN", "*"),
		Location:    loc,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got: %d", c.Port)
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
