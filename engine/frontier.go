// frontier.go enumerates the frontier: the set of canonical positions
// that are reachable from a root using only already-solved positions,
// but are not themselves solved yet. It explores the move-generation
// graph breadth-first and collects the unsolved positions it reaches
// rather than recursing depth-first; the queue holds bare canonical keys, not
// full boards, decoding a position only when it is actually dequeued.
package engine

import "context"

// FrontierEntry is one unsolved position discovered during the walk,
// together with its distance (in plies) from the root.
type FrontierEntry struct {
	Key   uint64
	Depth int
}

// EnumerateFrontier walks forward from root through the subgraph of
// already-solved positions (per s.Table()) and returns every
// not-yet-solved canonical key adjacent to that subgraph, each with
// its minimum depth from root. If root itself is unsolved, the result
// is just root at depth 0.
func EnumerateFrontier(ctx context.Context, s *Solver, root *Position) ([]FrontierEntry, error) {
	rootKey := Canonicalize(Encode(root))

	if _, ok := s.table.Get(rootKey); !ok {
		return []FrontierEntry{{Key: rootKey, Depth: 0}}, nil
	}

	type queued struct {
		key   uint64
		depth int
	}

	visited := map[uint64]bool{rootKey: true}
	queue := []queued{{rootKey, 0}}
	var frontier []FrontierEntry
	counter := 0

	for len(queue) > 0 {
		if cancelled(ctx, &counter) {
			return frontier, ErrCancelled
		}
		cur := queue[0]
		queue = queue[1:]

		pos, err := Decode(cur.key)
		if err != nil {
			return nil, err
		}
		if _, won := Terminal(pos); won {
			continue
		}

		for _, m := range GenerateMoves(pos) {
			term, token, err := Apply(pos, m)
			if err != nil {
				return nil, err
			}
			childKey := Canonicalize(Encode(pos))
			childTerminal := term != Ongoing
			Undo(pos, token)

			if childTerminal {
				// A move that wins or loses the game on the spot has no
				// subtree to solve; newFrame folds it into the parent
				// frame's immediate outcome instead of giving it its own
				// table entry, so it must never be queued or reported here.
				continue
			}

			if visited[childKey] {
				continue
			}
			visited[childKey] = true

			if _, ok := s.table.Get(childKey); ok {
				queue = append(queue, queued{childKey, cur.depth + 1})
			} else {
				frontier = append(frontier, FrontierEntry{Key: childKey, Depth: cur.depth + 1})
			}
		}
	}

	return frontier, nil
}
