package moods

// groupName names a mood region from its centroid's affect quadrant.
//
// Quadrants:
//   - positive valence + high arousal = "Bright & Energetic"
//   - negative valence + high arousal = "Tense & Stormy"
//   - positive valence + low arousal  = "Warm & Mellow"
//   - negative valence + low arousal  = "Blue & Subdued"
func groupName(valence, arousal float64) string {
	positive := valence > 0
	high := arousal > 0

	switch {
	case positive && high:
		return "Bright & Energetic"
	case !positive && high:
		return "Tense & Stormy"
	case positive && !high:
		return "Warm & Mellow"
	default:
		return "Blue & Subdued"
	}
}
