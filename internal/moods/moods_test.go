package moods

import (
	"testing"

	"github.com/moodbridge/go-mood-bridge/internal/catalog"
)

func ptr(v float64) *float64 { return &v }

func buildStore(t *testing.T, points [][2]float64) *catalog.Store {
	t.Helper()
	rows := make([]catalog.Row, len(points))
	for i, p := range points {
		rows[i] = catalog.Row{
			ID:      string(rune('a' + i)),
			Valence: ptr(p[0]),
			Arousal: ptr(p[1]),
		}
	}
	store, err := catalog.NewStore(rows)
	if err != nil {
		t.Fatalf("building test store: %v", err)
	}
	return store
}

func TestGroupName(t *testing.T) {
	tests := []struct {
		name    string
		valence float64
		arousal float64
		want    string
	}{
		{name: "positive valence high arousal", valence: 0.6, arousal: 0.7, want: "Bright & Energetic"},
		{name: "negative valence high arousal", valence: -0.5, arousal: 0.6, want: "Tense & Stormy"},
		{name: "positive valence low arousal", valence: 0.6, arousal: -0.5, want: "Warm & Mellow"},
		{name: "negative valence low arousal", valence: -0.6, arousal: -0.5, want: "Blue & Subdued"},
		{name: "boundary zero is low and negative", valence: 0, arousal: 0, want: "Blue & Subdued"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := groupName(tt.valence, tt.arousal); got != tt.want {
				t.Errorf("groupName(%v, %v) = %q, want %q", tt.valence, tt.arousal, got, tt.want)
			}
		})
	}
}

func TestDetectGroupsTooFewTracks(t *testing.T) {
	store := buildStore(t, [][2]float64{{0.1, 0.1}, {0.2, 0.2}})

	groups, outliers, err := DetectGroups(store, Config{NumGroups: 4, MinGroupSize: 1})
	if err != nil {
		t.Fatalf("DetectGroups() unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %d, want 0", len(groups))
	}
	if len(outliers) != store.Len() {
		t.Errorf("outliers = %d, want all %d tracks", len(outliers), store.Len())
	}
}

func TestDetectGroupsSeparatedClusters(t *testing.T) {
	// Two tight clusters in opposite affect quadrants.
	var points [][2]float64
	for i := 0; i < 5; i++ {
		offset := float64(i) * 0.01
		points = append(points, [2]float64{0.7 + offset, 0.7 + offset})
		points = append(points, [2]float64{-0.7 - offset, -0.7 - offset})
	}
	store := buildStore(t, points)

	groups, outliers, err := DetectGroups(store, Config{NumGroups: 2, MinGroupSize: 3})
	if err != nil {
		t.Fatalf("DetectGroups() unexpected error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if len(outliers) != 0 {
		t.Errorf("outliers = %d, want 0", len(outliers))
	}

	total := 0
	names := make(map[string]bool)
	for _, g := range groups {
		total += len(g.Tracks)
		names[g.Name] = true
	}
	if total != store.Len() {
		t.Errorf("grouped tracks = %d, want %d", total, store.Len())
	}
	if !names["Bright & Energetic"] || !names["Blue & Subdued"] {
		t.Errorf("group names = %v, want the two opposite quadrants", names)
	}
}

func TestDetectGroupsDefaultsApplied(t *testing.T) {
	store := buildStore(t, [][2]float64{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}})

	// Zero NumGroups falls back to the default; with only 3 tracks that
	// makes everything an outlier rather than failing.
	groups, outliers, err := DetectGroups(store, Config{})
	if err != nil {
		t.Fatalf("DetectGroups() unexpected error: %v", err)
	}
	if len(groups) != 0 || len(outliers) != 3 {
		t.Errorf("groups = %d, outliers = %d; want 0 and 3", len(groups), len(outliers))
	}
}
