package recommend

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
	"github.com/moodbridge/go-mood-bridge/internal/emotion"
)

// Entry is one selected track together with the target point it was matched
// against and the match distance, kept for diagnostics and testing.
type Entry struct {
	Track    catalog.Track
	Target   []float64 // raw affect units
	Distance float64   // standardized Euclidean distance
}

// Playlist is the result of one recommendation. An empty Entries with a
// length-1 Path means no transition was needed; Partial marks a playlist cut
// short by candidate exhaustion.
type Playlist struct {
	ID      uuid.UUID
	Start   string
	Target  string
	Path    []string
	Entries []Entry
	Partial bool
}

// Recommender assembles playlists that walk a listener from one emotion to
// another. It is read-only after construction and safe for concurrent use;
// all per-request state lives on the stack of BuildPlaylist.
type Recommender struct {
	model    *emotion.Model
	store    *catalog.Store
	index    *Index
	strategy ScoreStrategy
	pool     int
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithPoolSize overrides the candidate pool size per target point.
func WithPoolSize(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.pool = n
		}
	}
}

// WithStrategy substitutes the diversity scoring strategy.
func WithStrategy(s ScoreStrategy) Option {
	return func(r *Recommender) { r.strategy = s }
}

// New builds a Recommender, including its spatial index, for a loaded
// feature store.
func New(model *emotion.Model, store *catalog.Store, opts ...Option) *Recommender {
	r := &Recommender{
		model:    model,
		store:    store,
		index:    NewIndex(store),
		strategy: MinSeparation{Weight: DefaultDiversityWeight},
		pool:     DefaultPoolSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the feature store backing this recommender.
func (r *Recommender) Store() *catalog.Store { return r.store }

// BuildPlaylist plans the emotion path from start to target and selects one
// track per interpolated target point. Start equal to target yields an empty
// playlist, which is a success, not an error. When candidates run out the
// playlist is returned shorter than requested with Partial set.
func (r *Recommender) BuildPlaylist(start, target string, length int) (*Playlist, error) {
	if length < 1 {
		return nil, fmt.Errorf("requested length must be at least 1, got %d", length)
	}

	path, err := r.model.FindPath(start, target)
	if err != nil {
		return nil, err
	}

	playlist := &Playlist{
		ID:     uuid.New(),
		Start:  emotion.Normalize(start),
		Target: emotion.Normalize(target),
		Path:   path,
	}
	if len(path) == 1 {
		return playlist, nil
	}

	waypoints := make([][]float64, len(path))
	for i, label := range path {
		p, err := r.model.Affect(label)
		if err != nil {
			return nil, err
		}
		// A third store dimension gets a neutral dominance value; named
		// emotions are located in valence-arousal space only.
		w := make([]float64, r.store.Dims())
		w[0] = p.Valence
		w[1] = p.Arousal
		waypoints[i] = w
	}

	targets := GenerateTargets(waypoints, length)

	chosenIDs := make(map[string]bool, length)
	var chosenPoints [][]float64

	for _, targetPoint := range targets {
		candidates := r.index.Query(targetPoint, r.pool)
		picked, err := selectTrack(candidates, chosenIDs, chosenPoints, r.strategy)
		if err != nil {
			// Exhaustion ends the playlist early rather than failing it.
			playlist.Partial = true
			break
		}

		chosenIDs[picked.Track.ID] = true
		chosenPoints = append(chosenPoints, picked.Point)
		playlist.Entries = append(playlist.Entries, Entry{
			Track:    picked.Track,
			Target:   targetPoint,
			Distance: picked.Distance,
		})
	}

	return playlist, nil
}
