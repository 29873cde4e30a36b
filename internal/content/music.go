package content

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/mindwell/internal/cache"
	"github.com/jonathan/mindwell/internal/fetch"
	"golang.org/x/oauth2/clientcredentials"
)

// Spotify endpoints.
const (
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"
	SpotifyAPIURL   = "https://api.spotify.com/v1"

	// PlaylistQuery is the search used to find calm playlists.
	PlaylistQuery = "lofi calm focus OR relax"
	playlistLimit = 12
)

// Image is a cover image.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Playlist is a Spotify playlist summary.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ExternalURL string  `json:"externalUrl,omitempty"`
	Images      []Image `json:"images"`
	Owner       string  `json:"owner,omitempty"`
}

// Track is a playable track with a 30 second preview.
type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Image       string `json:"image,omitempty"`
	PreviewURL  string `json:"previewUrl"`
	ExternalURL string `json:"externalUrl,omitempty"`
}

type spotifyExternal struct {
	Spotify string `json:"spotify"`
}

type spotifyPlaylistSearch struct {
	Playlists struct {
		Items []*struct {
			ID           string          `json:"id"`
			Name         string          `json:"name"`
			ExternalURLs spotifyExternal `json:"external_urls"`
			Images       []Image         `json:"images"`
			Owner        struct {
				DisplayName string `json:"display_name"`
			} `json:"owner"`
		} `json:"items"`
	} `json:"playlists"`
}

type spotifyTracks struct {
	Items []struct {
		Track *struct {
			ID           string          `json:"id"`
			Name         string          `json:"name"`
			PreviewURL   *string         `json:"preview_url"`
			ExternalURLs spotifyExternal `json:"external_urls"`
			Artists      []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Images []Image `json:"images"`
			} `json:"album"`
		} `json:"track"`
	} `json:"items"`
}

// SpotifyOptions overrides the Spotify endpoints.
type SpotifyOptions struct {
	TokenURL string
	APIURL   string
}

// Spotify reads playlists with an app-only client credentials token.
type Spotify struct {
	apiURL string
	opts   *fetch.Options
	cache  cache.Cache
	ttl    time.Duration
}

// NewSpotify creates a client. ctx scopes token refreshes and should outlive
// the client. A nil so uses the public endpoints.
func NewSpotify(ctx context.Context, clientID, clientSecret string, c cache.Cache, ttl time.Duration, so *SpotifyOptions) *Spotify {
	tokenURL, apiURL := SpotifyTokenURL, SpotifyAPIURL
	if so != nil {
		if so.TokenURL != "" {
			tokenURL = so.TokenURL
		}
		if so.APIURL != "" {
			apiURL = so.APIURL
		}
	}

	creds := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := creds.Client(ctx)
	httpClient.Timeout = fetch.DefaultTimeout

	opts := fetch.DefaultOptions()
	opts.Client = httpClient
	return &Spotify{apiURL: strings.TrimRight(apiURL, "/"), opts: opts, cache: c, ttl: ttl}
}

// HTTPClient exposes the authenticated client.
func (s *Spotify) HTTPClient() *http.Client {
	return s.opts.Client
}

// Playlists returns calm and focus playlists.
func (s *Spotify) Playlists(ctx context.Context) ([]Playlist, error) {
	playlists, _, err := fetch.Remember(ctx, s.cache, "music:playlists", s.ttl, func(ctx context.Context) ([]Playlist, error) {
		params := url.Values{}
		params.Set("type", "playlist")
		params.Set("limit", strconv.Itoa(playlistLimit))
		params.Set("q", PlaylistQuery)

		var resp spotifyPlaylistSearch
		if err := fetch.JSON(ctx, s.apiURL+"/search?"+params.Encode(), s.opts, &resp); err != nil {
			return nil, err
		}

		out := make([]Playlist, 0, playlistLimit)
		for _, p := range resp.Playlists.Items {
			if p == nil {
				continue
			}
			images := p.Images
			if images == nil {
				images = []Image{}
			}
			out = append(out, Playlist{
				ID:          p.ID,
				Name:        p.Name,
				ExternalURL: p.ExternalURLs.Spotify,
				Images:      images,
				Owner:       p.Owner.DisplayName,
			})
		}
		return out, nil
	})
	return playlists, err
}

// PlaylistTracks returns the tracks of a playlist that have a preview URL.
func (s *Spotify) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	tracks, _, err := fetch.Remember(ctx, s.cache, "music:tracks:"+playlistID, s.ttl, func(ctx context.Context) ([]Track, error) {
		var resp spotifyTracks
		endpoint := s.apiURL + "/playlists/" + url.PathEscape(playlistID) + "/tracks?limit=100"
		if err := fetch.JSON(ctx, endpoint, s.opts, &resp); err != nil {
			return nil, err
		}

		out := make([]Track, 0, len(resp.Items))
		for _, it := range resp.Items {
			t := it.Track
			if t == nil || t.PreviewURL == nil || *t.PreviewURL == "" {
				continue
			}
			artists := make([]string, 0, len(t.Artists))
			for _, a := range t.Artists {
				artists = append(artists, a.Name)
			}
			track := Track{
				ID:          t.ID,
				Title:       t.Name,
				Artist:      strings.Join(artists, ", "),
				PreviewURL:  *t.PreviewURL,
				ExternalURL: t.ExternalURLs.Spotify,
			}
			if len(t.Album.Images) > 0 {
				track.Image = t.Album.Images[0].URL
			}
			out = append(out, track)
		}
		return out, nil
	})
	return tracks, err
}
