package emotion

// FindPath returns the shortest emotion transition path from start to target,
// by number of hops, using breadth-first search over the transition graph.
// A start equal to target yields a length-1 path, meaning no transition is
// needed. When multiple shortest paths exist the neighbor declaration order
// decides which one is returned; the choice is deterministic but carries no
// semantic weight.
func (m *Model) FindPath(start, target string) ([]string, error) {
	start = Normalize(start)
	target = Normalize(target)

	if !m.Knows(start) || !m.Knows(target) {
		return nil, ErrUnknownEmotion
	}

	if start == target {
		return []string{start}, nil
	}

	// Standard FIFO BFS with a predecessor map for path reconstruction.
	queue := []string{start}
	visited := map[string]bool{start: true}
	predecessor := make(map[string]string)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range m.neighbors[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			predecessor[next] = current

			if next == target {
				return reconstruct(predecessor, start, target), nil
			}
			queue = append(queue, next)
		}
	}

	return nil, ErrNoPath
}

// reconstruct walks the predecessor map back from target to start.
func reconstruct(predecessor map[string]string, start, target string) []string {
	var reversed []string
	for at := target; ; at = predecessor[at] {
		reversed = append(reversed, at)
		if at == start {
			break
		}
	}

	path := make([]string, len(reversed))
	for i, label := range reversed {
		path[len(reversed)-1-i] = label
	}
	return path
}
