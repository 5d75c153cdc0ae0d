// Package spotify enriches catalog rows with affect attributes derived from
// Spotify audio features. It is an optional collaborator: the engine works
// from catalog attributes alone when no credentials are configured.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is not
// set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET environment variable")

// Config holds Spotify API credentials.
type Config struct {
	ClientID     string
	ClientSecret string
}

// LoadConfig reads Spotify configuration from environment variables.
// Returns ErrMissingCredentials when either value is absent.
func LoadConfig() (*Config, error) {
	id := os.Getenv("SPOTIFY_ID")
	secret := os.Getenv("SPOTIFY_SECRET")
	if id == "" || secret == "" {
		return nil, ErrMissingCredentials
	}
	return &Config{ClientID: id, ClientSecret: secret}, nil
}

// Client wraps the Spotify Web API with the enrichment methods the catalog
// needs. Uses the client-credentials flow; no user login is involved.
type Client struct {
	api *spotify.Client
}

// NewClient authenticates with the client-credentials flow and returns a
// ready client.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	conf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating with Spotify: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &Client{api: spotify.New(httpClient)}, nil
}
