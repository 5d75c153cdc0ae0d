package recommend

import (
	"errors"
	"math"
)

// ErrNoCandidate is returned when every candidate for a target point has
// already been chosen. The assembler recovers by ending the playlist early.
var ErrNoCandidate = errors.New("no candidate available")

// ScoreStrategy scores a candidate against the standardized coordinates of
// the tracks already chosen for the playlist. Higher is better. Strategies
// must never let increased separation from prior picks lower the score.
type ScoreStrategy interface {
	Score(c Candidate, chosen [][]float64) float64
}

// MinSeparation is the default strategy: closeness to the target dominates,
// with a bonus proportional to the candidate's distance from its nearest
// already-chosen track.
type MinSeparation struct {
	Weight float64
}

// DefaultDiversityWeight balances target fidelity against variety.
const DefaultDiversityWeight = 0.3

// Score returns -distance plus the weighted minimum separation from the
// chosen set. With nothing chosen yet the bonus is zero, so the first pick
// is purely the nearest neighbor.
func (s MinSeparation) Score(c Candidate, chosen [][]float64) float64 {
	score := -c.Distance
	if len(chosen) == 0 {
		return score
	}

	minSep := math.Inf(1)
	for _, p := range chosen {
		if d := euclidean(c.Point, p); d < minSep {
			minSep = d
		}
	}
	return score + s.Weight*minSep
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for d := range a {
		diff := a[d] - b[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// selectTrack picks the highest-scoring candidate not already chosen.
// Ties go to the smaller raw distance, then to catalog order, so selection
// is deterministic for a fixed catalog.
func selectTrack(candidates []Candidate, chosenIDs map[string]bool, chosenPoints [][]float64, strategy ScoreStrategy) (Candidate, error) {
	var (
		best      Candidate
		bestScore = math.Inf(-1)
		found     bool
	)
	for _, c := range candidates {
		if chosenIDs[c.Track.ID] {
			continue
		}
		score := strategy.Score(c, chosenPoints)
		if !found || better(score, c, bestScore, best) {
			best = c
			bestScore = score
			found = true
		}
	}
	if !found {
		return Candidate{}, ErrNoCandidate
	}
	return best, nil
}

func better(score float64, c Candidate, bestScore float64, best Candidate) bool {
	if score != bestScore {
		return score > bestScore
	}
	if c.Distance != best.Distance {
		return c.Distance < best.Distance
	}
	return c.Position < best.Position
}
