package config

import "os"

// ContentConfig holds credentials and endpoints for the public content providers.
// Missing credentials leave the matching provider disabled.
type ContentConfig struct {
	GutendexURL         string
	YouTubeAPIKey       string
	SpotifyClientID     string
	SpotifyClientSecret string
}

// NewContentConfig reads GUTENDEX_URL (default https://gutendex.com), YOUTUBE_API_KEY,
// SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET.
func NewContentConfig() *ContentConfig {
	return &ContentConfig{
		GutendexURL:         envString("GUTENDEX_URL", "https://gutendex.com"),
		YouTubeAPIKey:       os.Getenv("YOUTUBE_API_KEY"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
	}
}

// SpotifyEnabled reports whether client credentials are configured.
func (c *ContentConfig) SpotifyEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}
