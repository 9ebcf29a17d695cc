package analysis

import (
	"fmt"
	"sort"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/graph"
)

// ImpactResult describes what changing a node touches. Forward is the set
// of nodes depending on it transitively; Backward is its own transitive
// dependencies. Score is the forward set size over the total node count.
type ImpactResult struct {
	Node     string   `json:"node"`
	Forward  []string `json:"forward"`
	Backward []string `json:"backward"`
	Score    float64  `json:"score"`
}

// Impact computes forward and backward reachability for a node. The
// traversal keeps a visited set, so it terminates on cyclic graphs.
func Impact(s *graph.Snapshot, node string) (*ImpactResult, error) {
	if !s.HasNode(node) {
		return nil, fmt.Errorf("%w: %q", apperr.ErrNodeNotFound, node)
	}

	result := &ImpactResult{
		Node:     node,
		Forward:  reachable(node, s.Reverse()),
		Backward: reachable(node, s.Adjacency()),
	}
	if len(s.Nodes) > 0 {
		result.Score = float64(len(result.Forward)) / float64(len(s.Nodes))
	}

	return result, nil
}

// reachable collects every node reachable from start, excluding start
// itself, sorted ascending.
func reachable(start string, adjacency map[string][]string) []string {
	visited := map[string]bool{start: true}
	queue := []string{start}
	out := make([]string, 0)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			out = append(out, next)
			queue = append(queue, next)
		}
	}

	sort.Strings(out)
	return out
}
