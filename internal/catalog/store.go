package catalog

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Store is the fitted feature space over a catalog: the matchable tracks,
// the per-dimension standardization parameters, and the standardized feature
// matrix. Standardization is fit exactly once per catalog load; refitting
// would silently change every distance, so a Store is immutable after
// construction and safe for concurrent queries.
type Store struct {
	tracks  []Track
	matrix  [][]float64
	mean    []float64
	std     []float64
	dims    int
	skipped int
}

// NewStore filters, normalizes, and standardizes catalog rows.
// Rows without an ID or without valence/arousal are excluded (but counted);
// duplicate IDs keep their first occurrence. A dominance dimension is added
// when any row carries one, with missing values filled by the median of the
// present values. Returns ErrCatalogUnavailable if nothing usable remains.
func NewStore(rows []Row) (*Store, error) {
	var (
		included []Row
		skipped  int
		seen     = make(map[string]bool)
	)
	for _, r := range rows {
		if r.ID == "" || !r.HasAffect() || seen[r.ID] {
			skipped++
			continue
		}
		seen[r.ID] = true
		included = append(included, r)
	}
	if len(included) == 0 {
		return nil, fmt.Errorf("%w: no matchable tracks after filtering", ErrCatalogUnavailable)
	}

	dims := 2
	dominance := fillDominance(included)
	if dominance != nil {
		dims = 3
	}

	// Raw affect columns, normalized to [-1, 1] per dimension.
	n := len(included)
	valence := make([]float64, n)
	arousal := make([]float64, n)
	for i, r := range included {
		valence[i] = *r.Valence
		arousal[i] = *r.Arousal
	}
	normalizeColumn(valence)
	normalizeColumn(arousal)
	if dominance != nil {
		normalizeColumn(dominance)
	}

	s := &Store{
		tracks:  make([]Track, n),
		matrix:  make([][]float64, n),
		mean:    make([]float64, dims),
		std:     make([]float64, dims),
		dims:    dims,
		skipped: skipped,
	}
	for i, r := range included {
		affect := make([]float64, dims)
		affect[0] = valence[i]
		affect[1] = arousal[i]
		if dominance != nil {
			affect[2] = dominance[i]
		}
		s.tracks[i] = Track{
			ID:        r.ID,
			Title:     r.Title,
			Artist:    r.Artist,
			SpotifyID: r.SpotifyID,
			Affect:    affect,
		}
	}

	s.fit()
	return s, nil
}

// fit computes per-dimension mean and standard deviation and builds the
// standardized matrix. A zero deviation is treated as 1 so a constant
// dimension degrades safely instead of dividing by zero.
func (s *Store) fit() {
	n := len(s.tracks)
	column := make([]float64, n)
	for d := 0; d < s.dims; d++ {
		for i, t := range s.tracks {
			column[i] = t.Affect[d]
		}
		s.mean[d] = stat.Mean(column, nil)
		s.std[d] = stat.StdDev(column, nil)
		if s.std[d] == 0 || math.IsNaN(s.std[d]) {
			s.std[d] = 1
		}
	}

	for i, t := range s.tracks {
		s.matrix[i] = s.Standardize(t.Affect)
	}
}

// Standardize applies the fitted (x - mean) / std transform to a raw affect
// point. The input length must match Dims.
func (s *Store) Standardize(raw []float64) []float64 {
	out := make([]float64, s.dims)
	for d := 0; d < s.dims && d < len(raw); d++ {
		out[d] = (raw[d] - s.mean[d]) / s.std[d]
	}
	return out
}

// StandardizeAffect standardizes a valence/arousal pair, padding a neutral
// dominance value when the store carries a third dimension.
func (s *Store) StandardizeAffect(valence, arousal float64) []float64 {
	raw := make([]float64, s.dims)
	raw[0] = valence
	raw[1] = arousal
	return s.Standardize(raw)
}

// Len returns the number of matchable tracks.
func (s *Store) Len() int { return len(s.tracks) }

// Dims returns the number of affect dimensions.
func (s *Store) Dims() int { return s.dims }

// Skipped returns the number of source rows excluded during filtering.
func (s *Store) Skipped() int { return s.skipped }

// Track returns the track at the given catalog position. The Affect slice
// is shared with the store and must be treated as read-only.
func (s *Store) Track(i int) Track { return s.tracks[i] }

// Tracks returns all matchable tracks in catalog order. The returned slice
// is a copy and may be reordered freely.
func (s *Store) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// StandardizedPoint returns a copy of the standardized coordinates of the
// track at the given catalog position.
func (s *Store) StandardizedPoint(i int) []float64 {
	out := make([]float64, s.dims)
	copy(out, s.matrix[i])
	return out
}

// Mean returns the fitted per-dimension means.
func (s *Store) Mean() []float64 { return s.mean }

// Std returns the fitted per-dimension standard deviations.
func (s *Store) Std() []float64 { return s.std }

// fillDominance collects the dominance column across rows, filling missing
// entries with the median of the present values. Returns nil when no row has
// a dominance attribute.
func fillDominance(rows []Row) []float64 {
	var present []float64
	for _, r := range rows {
		if r.Dominance != nil {
			present = append(present, *r.Dominance)
		}
	}
	if len(present) == 0 {
		return nil
	}

	fill := median(present)
	out := make([]float64, len(rows))
	for i, r := range rows {
		if r.Dominance != nil {
			out[i] = *r.Dominance
		} else {
			out[i] = fill
		}
	}
	return out
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// normalizeColumn rescales a column to [-1, 1] in place. Constant columns
// and values already roughly in range (within [-1.2, 1.2], which covers
// [0, 1] attributes) are kept as-is; anything else gets a min-max rescale.
func normalizeColumn(values []float64) {
	mn, mx := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		mn = math.Min(mn, v)
		mx = math.Max(mx, v)
	}
	switch {
	case mx == mn:
		return
	case mn >= -1.2 && mx <= 1.2:
		return
	default:
		for i, v := range values {
			values[i] = 2*(v-mn)/(mx-mn) - 1
		}
	}
}
