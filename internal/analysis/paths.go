package analysis

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/graph"
)

// ShortestPath finds the shortest path from one node to another, treating
// every edge as weight 1. A node identical to itself is the trivial
// single-node path; an absent node is an error, not an empty path.
func ShortestPath(s *graph.Snapshot, from, to string) ([]string, error) {
	if !s.HasNode(from) {
		return nil, fmt.Errorf("%w: %q", apperr.ErrNodeNotFound, from)
	}
	if !s.HasNode(to) {
		return nil, fmt.Errorf("%w: %q", apperr.ErrNodeNotFound, to)
	}
	if from == to {
		return []string{from}, nil
	}

	g, err := directed(s)
	if err != nil {
		return nil, err
	}

	path, err := graphlib.ShortestPath(g, from, to)
	if err != nil {
		if errors.Is(err, graphlib.ErrTargetNotReachable) {
			return nil, fmt.Errorf("%w: %q -> %q", apperr.ErrNoPath, from, to)
		}
		return nil, fmt.Errorf("finding path %q -> %q: %w", from, to, err)
	}

	return path, nil
}
