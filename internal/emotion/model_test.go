package emotion

import (
	"testing"
)

func TestAffect(t *testing.T) {
	m := NewModel()

	tests := []struct {
		name        string
		label       string
		wantValence float64
		wantArousal float64
		wantErr     bool
	}{
		{name: "sad", label: "sad", wantValence: -0.7, wantArousal: -0.6},
		{name: "happy", label: "happy", wantValence: 0.8, wantArousal: 0.8},
		{name: "neutral", label: "neutral", wantValence: 0, wantArousal: 0},
		{name: "uppercase normalized", label: "HAPPY", wantValence: 0.8, wantArousal: 0.8},
		{name: "whitespace normalized", label: "  calm  ", wantValence: 0.7, wantArousal: -0.7},
		{name: "unknown label", label: "melancholic", wantErr: true},
		{name: "empty label", label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := m.Affect(tt.label)
			if tt.wantErr {
				if err != ErrUnknownEmotion {
					t.Fatalf("Affect(%q) error = %v, want ErrUnknownEmotion", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Affect(%q) unexpected error: %v", tt.label, err)
			}
			if p.Valence != tt.wantValence || p.Arousal != tt.wantArousal {
				t.Errorf("Affect(%q) = (%v, %v), want (%v, %v)",
					tt.label, p.Valence, p.Arousal, tt.wantValence, tt.wantArousal)
			}
		})
	}
}

func TestGraphLabelsHaveCoordinates(t *testing.T) {
	m := NewModel()

	// Every label reachable through the transition graph must be locatable
	// in affect space, or path waypoints would have no coordinates.
	for from, neighbors := range m.neighbors {
		if !m.Knows(from) {
			t.Errorf("graph node %q has no affect coordinates", from)
		}
		for _, to := range neighbors {
			if !m.Knows(to) {
				t.Errorf("graph edge %s->%s targets a label with no affect coordinates", from, to)
			}
		}
	}
}

func TestAffectCoordinatesBounded(t *testing.T) {
	m := NewModel()

	for _, label := range m.Labels() {
		p, err := m.Affect(label)
		if err != nil {
			t.Fatalf("Affect(%q) unexpected error: %v", label, err)
		}
		if p.Valence < -1 || p.Valence > 1 || p.Arousal < -1 || p.Arousal > 1 {
			t.Errorf("%s = (%v, %v) outside [-1, 1]", label, p.Valence, p.Arousal)
		}
	}
}

func TestReverseEdgesPresent(t *testing.T) {
	m := NewModel()

	// Path search treats the graph as undirected: every declared edge must
	// be traversable backwards.
	for _, e := range transitionTable {
		for _, to := range e.to {
			if !contains(m.neighbors[to], e.from) {
				t.Errorf("edge %s->%s has no reverse edge", e.from, to)
			}
		}
	}
}
