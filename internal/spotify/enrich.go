package spotify

import (
	"context"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
)

const maxTracksPerRequest = 100

// EnrichAffect fills in valence and arousal for rows that lack them but
// carry a Spotify ID, using Spotify audio features. Requests are batched to
// the API limit of 100 tracks. Returns the number of rows enriched; rows
// whose features are unavailable are left untouched.
func (c *Client) EnrichAffect(ctx context.Context, rows []catalog.Row) (int, error) {
	// Collect the rows that need enrichment.
	var ids []spotify.ID
	indexByID := make(map[string]int)
	for i, r := range rows {
		if r.HasAffect() || r.SpotifyID == "" {
			continue
		}
		ids = append(ids, spotify.ID(r.SpotifyID))
		indexByID[r.SpotifyID] = i
	}
	if len(ids) == 0 {
		return 0, nil
	}

	enriched := 0
	for i := 0; i < len(ids); i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, len(ids))
		batch := ids[i:end]

		log.Printf("Fetching audio features %d-%d of %d...", i+1, end, len(ids))

		features, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			return enriched, fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue // track has no audio features
			}
			idx, ok := indexByID[f.ID.String()]
			if !ok {
				continue
			}
			applyAffect(&rows[idx], f)
			enriched++
		}
	}
	return enriched, nil
}

// applyAffect maps Spotify's [0, 1] valence and energy onto the [-1, 1]
// affect space: valence stays valence, energy stands in for arousal.
func applyAffect(r *catalog.Row, f *spotify.AudioFeatures) {
	valence := float64(f.Valence)*2 - 1
	arousal := float64(f.Energy)*2 - 1
	r.Valence = &valence
	r.Arousal = &arousal
}
