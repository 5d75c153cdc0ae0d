// Package catalog loads a song catalog and builds the standardized affect
// feature space that playlist matching runs in.
package catalog

import (
	"context"
	"errors"
)

// ErrCatalogUnavailable is returned when the catalog source cannot be read
// or contains no usable tracks. Callers degrade to "no playlist generation"
// rather than failing hard.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Row is one raw catalog record as delivered by a Source. Affect attributes
// are pointers so that missing values survive until filtering (or until an
// enrichment step fills them in).
type Row struct {
	ID        string
	Title     string
	Artist    string
	SpotifyID string
	Valence   *float64
	Arousal   *float64
	Dominance *float64
}

// HasAffect reports whether the row carries the attributes required for
// matching.
func (r Row) HasAffect() bool {
	return r.Valence != nil && r.Arousal != nil
}

// Track is an immutable catalog entry included in the matchable set.
// Affect holds the raw (pre-standardization) coordinates, one per store
// dimension.
type Track struct {
	ID        string
	Title     string
	Artist    string
	SpotifyID string
	Affect    []float64
}

// Source supplies raw catalog rows. Implementations exist for delimited
// files (CSVSource) and Postgres (internal/db).
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Load reads all rows from a source and builds a feature store in one step.
func Load(ctx context.Context, src Source) (*Store, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(rows)
}
