// Package emotion models a valence-arousal affect space and the graph of
// psychologically valid transitions between named emotional states.
package emotion

import (
	"errors"
	"strings"
)

// Common errors.
var (
	// ErrUnknownEmotion is returned when a label has no entry in the model.
	ErrUnknownEmotion = errors.New("unknown emotion")

	// ErrNoPath is returned when no transition path connects two emotions.
	// With the built-in graph this indicates a configuration defect.
	ErrNoPath = errors.New("no transition path found")
)

// Point is a location in affect space: valence (negative..positive) and
// arousal (low..high energy), both conventionally in [-1, 1].
type Point struct {
	Valence float64
	Arousal float64
}

// affectTable maps each emotion label to its canonical affect coordinates.
var affectTable = map[string]Point{
	"happy":     {0.8, 0.8},
	"sad":       {-0.7, -0.6},
	"angry":     {-0.6, 0.7},
	"fear":      {-0.4, 0.8},
	"fearful":   {-0.4, 0.8},
	"surprise":  {0.1, 0.9},
	"surprised": {0.1, 0.9},
	"disgust":   {-0.7, 0.1},
	"neutral":   {0.0, 0.0},
	"calm":      {0.7, -0.7},
	"anxious":   {-0.3, 0.6},
	"focused":   {0.3, 0.2},
	"energized": {0.6, 0.8},
	"relaxed":   {0.5, -0.6},
	"loving":    {0.7, 0.3},
	"excited":   {0.7, 0.9},
}

// transitionEdge is one declared directed edge in the transition graph.
type transitionEdge struct {
	from string
	to   []string
}

// transitionTable lists the permissible direct transitions, following the ISO
// principle: each step is a small, natural shift rather than a mood jump.
// Declaration order fixes the neighbor iteration order used by FindPath.
var transitionTable = []transitionEdge{
	{"sad", []string{"neutral", "calm", "relaxed"}},
	{"angry", []string{"anxious", "neutral", "focused"}},
	{"fearful", []string{"anxious", "neutral", "calm"}},
	{"fear", []string{"anxious", "neutral", "calm"}},
	{"disgust", []string{"neutral"}},
	{"anxious", []string{"neutral", "calm", "focused"}},
	{"surprised", []string{"neutral", "happy"}},
	{"surprise", []string{"neutral", "happy"}},
	{"neutral", []string{"calm", "focused", "happy", "relaxed"}},
	{"calm", []string{"relaxed", "focused", "happy"}},
	{"relaxed", []string{"calm", "happy", "focused"}},
	{"focused", []string{"calm", "energized", "happy"}},
	{"energized", []string{"happy", "focused", "excited"}},
	{"happy", []string{"energized", "loving", "calm"}},
	{"loving", []string{"happy", "calm", "relaxed"}},
	{"excited", []string{"energized", "happy"}},
}

// Model is the read-only emotion model: affect coordinates plus the
// transition adjacency. Built once at startup and safe for concurrent use.
type Model struct {
	affect    map[string]Point
	neighbors map[string][]string
	labels    []string
}

// NewModel builds the default emotion model.
func NewModel() *Model {
	m := &Model{
		affect:    make(map[string]Point, len(affectTable)),
		neighbors: make(map[string][]string, len(affectTable)),
	}
	for label, p := range affectTable {
		m.affect[label] = p
	}

	// Forward edges in declaration order.
	for _, e := range transitionTable {
		m.neighbors[e.from] = append(m.neighbors[e.from], e.to...)
	}
	// Reverse edges appended afterwards, also in declaration order, so the
	// graph is traversable in both directions with a deterministic neighbor
	// order. Duplicates are skipped.
	for _, e := range transitionTable {
		for _, to := range e.to {
			if !contains(m.neighbors[to], e.from) {
				m.neighbors[to] = append(m.neighbors[to], e.from)
			}
		}
	}

	for _, e := range transitionTable {
		m.labels = append(m.labels, e.from)
	}
	return m
}

// Normalize canonicalizes a user-supplied label for lookup.
func Normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Labels returns the emotion labels in declaration order.
func (m *Model) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Affect returns the affect coordinates for a label.
// Returns ErrUnknownEmotion if the label is not in the model.
func (m *Model) Affect(label string) (Point, error) {
	p, ok := m.affect[Normalize(label)]
	if !ok {
		return Point{}, ErrUnknownEmotion
	}
	return p, nil
}

// Knows reports whether a label exists in the model.
func (m *Model) Knows(label string) bool {
	_, ok := m.affect[Normalize(label)]
	return ok
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
