// Package recommend plans a sequence of affect-space targets along an
// emotion transition path and matches catalog tracks to them.
package recommend

// easeInOutCubic blends slowly out of t=0 and slowly into t=1, so each
// transition departs and arrives gently instead of jumping.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// lerp interpolates between two points per dimension at eased parameter t.
// The endpoints are returned exactly, not via arithmetic that could drift.
func lerp(from, to []float64, t float64) []float64 {
	out := make([]float64, len(from))
	switch eased := easeInOutCubic(t); {
	case eased <= 0:
		copy(out, from)
	case eased >= 1:
		copy(out, to)
	default:
		for d := range from {
			out[d] = from[d] + eased*(to[d]-from[d])
		}
	}
	return out
}

// GenerateTargets produces count target points along the polyline of
// waypoints, in raw affect units. The count is split across segments with
// the remainder going to the later segments. Within a segment the blend
// parameter is evenly spaced; only the first segment includes t=0, so a
// waypoint shared by two segments is emitted once. A single waypoint (start
// equals target) yields no targets.
func GenerateTargets(waypoints [][]float64, count int) [][]float64 {
	if len(waypoints) < 2 || count < 1 {
		return nil
	}

	segments := len(waypoints) - 1
	base := count / segments
	remainder := count % segments

	targets := make([][]float64, 0, count)
	for seg := 0; seg < segments; seg++ {
		n := base
		// Remainder lands on the later segments.
		if seg >= segments-remainder {
			n++
		}
		if n == 0 {
			continue
		}

		from, to := waypoints[seg], waypoints[seg+1]
		for j := 0; j < n; j++ {
			targets = append(targets, lerp(from, to, blendParam(seg, j, n)))
		}
	}
	return targets
}

// blendParam returns the j-th of n evenly spaced blend parameters for a
// segment. The first segment spans [0, 1] inclusive; later segments span
// (0, 1] so the shared waypoint is not duplicated.
func blendParam(seg, j, n int) float64 {
	if seg == 0 {
		if n == 1 {
			return 0
		}
		return float64(j) / float64(n-1)
	}
	return float64(j+1) / float64(n)
}
