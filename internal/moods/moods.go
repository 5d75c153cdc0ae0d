// Package moods groups catalog tracks into named regions of affect space
// using k-means clustering. Groups are diagnostic: they describe the
// catalog's coverage of the mood plane but play no part in selection.
package moods

import (
	"fmt"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
)

// Config holds mood grouping parameters.
type Config struct {
	NumGroups    int // number of clusters to create
	MinGroupSize int // smaller clusters become outliers
}

// DefaultConfig returns the recommended defaults: one group per affect
// quadrant.
func DefaultConfig() Config {
	return Config{
		NumGroups:    4,
		MinGroupSize: 3,
	}
}

// Group is a cluster of tracks around one region of affect space. Valence
// and Arousal are the centroid coordinates in raw affect units.
type Group struct {
	Name    string
	Valence float64
	Arousal float64
	Tracks  []catalog.Track
}

// trackObservation adapts a standardized track point to the clustering
// interface while keeping hold of its catalog position.
type trackObservation struct {
	position int
	coords   clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DetectGroups clusters the store's tracks by standardized affect
// coordinates. Returns the groups plus the tracks left over from clusters
// below the minimum size. With fewer tracks than clusters, everything is an
// outlier.
func DetectGroups(store *catalog.Store, cfg Config) ([]Group, []catalog.Track, error) {
	if cfg.NumGroups <= 0 {
		cfg.NumGroups = DefaultConfig().NumGroups
	}

	if store.Len() < cfg.NumGroups {
		outliers := make([]catalog.Track, store.Len())
		copy(outliers, store.Tracks())
		return nil, outliers, nil
	}

	var obs clusters.Observations
	for i := 0; i < store.Len(); i++ {
		obs = append(obs, trackObservation{
			position: i,
			coords:   clusters.Coordinates(store.StandardizedPoint(i)),
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumGroups)
	if err != nil {
		return nil, nil, fmt.Errorf("partitioning catalog: %w", err)
	}

	var (
		groups   []Group
		outliers []catalog.Track
	)
	for _, cluster := range result {
		var tracks []catalog.Track
		for _, o := range cluster.Observations {
			if to, ok := o.(trackObservation); ok {
				tracks = append(tracks, store.Track(to.position))
			}
		}

		if len(tracks) < cfg.MinGroupSize {
			outliers = append(outliers, tracks...)
			continue
		}

		// Centroid back in raw affect units for naming and display.
		valence := destandardize(cluster.Center, store, 0)
		arousal := destandardize(cluster.Center, store, 1)

		groups = append(groups, Group{
			Name:    groupName(valence, arousal),
			Valence: valence,
			Arousal: arousal,
			Tracks:  tracks,
		})
	}

	// Largest groups first; name breaks ties for a stable order.
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Tracks) != len(groups[j].Tracks) {
			return len(groups[i].Tracks) > len(groups[j].Tracks)
		}
		return groups[i].Name < groups[j].Name
	})

	return groups, outliers, nil
}

func destandardize(center clusters.Coordinates, store *catalog.Store, dim int) float64 {
	if dim >= len(center) {
		return 0
	}
	return center[dim]*store.Std()[dim] + store.Mean()[dim]
}
