package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
)

// CatalogSource reads catalog rows from the tracks table. It satisfies
// catalog.Source, so a database-backed catalog is interchangeable with a
// file-backed one.
type CatalogSource struct {
	pool *pgxpool.Pool
}

// Rows loads the full track catalog. Failures are reported as
// catalog.ErrCatalogUnavailable so callers can degrade cleanly.
func (s *CatalogSource) Rows(ctx context.Context) ([]catalog.Row, error) {
	query := `
		SELECT id, title, artist, spotify_id, valence, arousal, dominance
		FROM tracks
		ORDER BY id
	`
	pgxRows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tracks: %v", catalog.ErrCatalogUnavailable, err)
	}
	defer pgxRows.Close()

	var rows []catalog.Row
	for pgxRows.Next() {
		var (
			row    catalog.Row
			title  *string
			artist *string
			spID   *string
		)
		err := pgxRows.Scan(
			&row.ID,
			&title,
			&artist,
			&spID,
			&row.Valence,
			&row.Arousal,
			&row.Dominance,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning track: %v", catalog.ErrCatalogUnavailable, err)
		}
		if title != nil {
			row.Title = *title
		}
		if artist != nil {
			row.Artist = *artist
		}
		if spID != nil {
			row.SpotifyID = *spID
		}
		rows = append(rows, row)
	}
	if err := pgxRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading tracks: %v", catalog.ErrCatalogUnavailable, err)
	}
	return rows, nil
}
