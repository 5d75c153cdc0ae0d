// Command mood-bridge serves the emotion-to-emotion playlist API.
//
// The catalog is loaded once at startup, from DATABASE_URL when set and
// otherwise from the CSV file at CATALOG_PATH. If the catalog cannot be
// loaded the server still starts, in degraded mode, and playlist endpoints
// answer 503 until the next restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
	"github.com/moodbridge/go-mood-bridge/internal/db"
	"github.com/moodbridge/go-mood-bridge/internal/emotion"
	"github.com/moodbridge/go-mood-bridge/internal/moods"
	"github.com/moodbridge/go-mood-bridge/internal/recommend"
	"github.com/moodbridge/go-mood-bridge/internal/spotify"
	"github.com/moodbridge/go-mood-bridge/internal/web"
)

// DefaultCatalogPath is the CSV catalog used when CATALOG_PATH is not set.
const DefaultCatalogPath = "muse_v3.csv"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = web.DefaultAddr
	}

	model := emotion.NewModel()

	store, err := loadCatalog(ctx)

	var (
		recommender *recommend.Recommender
		moodGroups  []moods.Group
	)
	switch {
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		log.Printf("Catalog unavailable, running degraded: %v", err)
	case err != nil:
		return err
	default:
		var opts []recommend.Option
		if pool, ok := poolSizeFromEnv(); ok {
			opts = append(opts, recommend.WithPoolSize(pool))
		}
		recommender = recommend.New(model, store, opts...)
		log.Printf("Catalog loaded: %d matchable tracks, %d skipped, %d dimensions",
			store.Len(), store.Skipped(), store.Dims())

		groups, outliers, err := moods.DetectGroups(store, moods.DefaultConfig())
		if err != nil {
			log.Printf("Mood grouping failed: %v", err)
		} else {
			moodGroups = groups
			log.Printf("Detected %d mood groups (%d outliers)", len(groups), len(outliers))
		}
	}

	server := web.NewServer(web.ServerConfig{
		Addr:        addr,
		Model:       model,
		Recommender: recommender,
		MoodGroups:  moodGroups,
	})
	return server.Run()
}

// loadCatalog reads catalog rows from Postgres or CSV, optionally enriches
// missing affect attributes via Spotify, and fits the feature store.
func loadCatalog(ctx context.Context) (*catalog.Store, error) {
	var source catalog.Source
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err := db.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: connecting to database: %v", catalog.ErrCatalogUnavailable, err)
		}
		defer database.Close()
		source = database.Catalog()
	} else {
		path := os.Getenv("CATALOG_PATH")
		if path == "" {
			path = DefaultCatalogPath
		}
		source = catalog.NewCSVSource(path)
	}

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, err
	}

	enrichAffect(ctx, rows)

	return catalog.NewStore(rows)
}

// enrichAffect fills missing valence/arousal attributes from Spotify audio
// features when credentials are configured. Best effort: failures only cost
// us the rows that stay unenriched.
func enrichAffect(ctx context.Context, rows []catalog.Row) {
	cfg, err := spotify.LoadConfig()
	if errors.Is(err, spotify.ErrMissingCredentials) {
		return
	}
	if err != nil {
		log.Printf("Spotify configuration: %v", err)
		return
	}

	client, err := spotify.NewClient(ctx, cfg)
	if err != nil {
		log.Printf("Spotify enrichment disabled: %v", err)
		return
	}

	enriched, err := client.EnrichAffect(ctx, rows)
	if err != nil {
		log.Printf("Spotify enrichment incomplete: %v", err)
	}
	if enriched > 0 {
		log.Printf("Enriched %d tracks with Spotify audio features", enriched)
	}
}

func poolSizeFromEnv() (int, bool) {
	raw := os.Getenv("PLAYLIST_POOL_SIZE")
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Printf("Ignoring invalid PLAYLIST_POOL_SIZE %q", raw)
		return 0, false
	}
	return n, true
}
