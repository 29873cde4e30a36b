package config

import (
	"fmt"
	"os"
	"time"
)

// AIConfig holds settings for the generative-language enrichment calls.
// An empty APIKey disables enrichment.
type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewAIConfig reads GEMINI_API_KEY, GEMINI_MODEL and AI_TIMEOUT (default 20s).
func NewAIConfig() (*AIConfig, error) {
	timeout, err := envDuration("AI_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}
	cfg := &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		Timeout: timeout,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Enabled reports whether an API key is configured.
func (c *AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c *AIConfig) normalize() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got: %s", c.Timeout)
	}
	return nil
}
