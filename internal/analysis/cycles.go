package analysis

import (
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"

	"github.com/repolens-dev/repolens/internal/graph"
)

// directed projects a snapshot into a dominikbraun graph with unit edge
// weights, so hop count and path cost coincide.
func directed(s *graph.Snapshot) (graphlib.Graph[string, string], error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed(), graphlib.Weighted())

	for _, n := range s.Nodes {
		if err := g.AddVertex(n.ID); err != nil {
			return nil, fmt.Errorf("adding vertex %q: %w", n.ID, err)
		}
	}
	for _, e := range s.Edges {
		if err := g.AddEdge(e.Source, e.Target, graphlib.EdgeWeight(1)); err != nil {
			return nil, fmt.Errorf("adding edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	return g, nil
}

// Cycles reports the strongly-connected components of size > 1, each as an
// ordered node sequence canonicalized on its lexicographically smallest
// starting node. An acyclic graph yields an empty result.
func Cycles(s *graph.Snapshot) ([][]string, error) {
	g, err := directed(s)
	if err != nil {
		return nil, err
	}

	components, err := graphlib.StronglyConnectedComponents(g)
	if err != nil {
		return nil, fmt.Errorf("computing strongly connected components: %w", err)
	}

	adjacency := s.Adjacency()
	cycles := make([][]string, 0)
	for _, comp := range components {
		if len(comp) < 2 {
			continue
		}
		cycles = append(cycles, orderCycle(comp, adjacency))
	}

	sort.Slice(cycles, func(i, j int) bool {
		if cycles[i][0] != cycles[j][0] {
			return cycles[i][0] < cycles[j][0]
		}
		return len(cycles[i]) < len(cycles[j])
	})

	return cycles, nil
}

// orderCycle walks a strongly-connected component from its smallest node,
// always taking the smallest unvisited successor inside the component.
// For a simple cycle this recovers the cycle order; denser components get
// a deterministic traversal order with stragglers appended sorted.
func orderCycle(component []string, adjacency map[string][]string) []string {
	member := make(map[string]bool, len(component))
	for _, id := range component {
		member[id] = true
	}

	sorted := make([]string, len(component))
	copy(sorted, component)
	sort.Strings(sorted)

	out := make([]string, 0, len(component))
	visited := make(map[string]bool, len(component))

	current := sorted[0]
	for current != "" && !visited[current] {
		visited[current] = true
		out = append(out, current)

		next := ""
		for _, succ := range adjacency[current] {
			if member[succ] && !visited[succ] {
				next = succ
				break
			}
		}
		current = next
	}

	for _, id := range sorted {
		if !visited[id] {
			out = append(out, id)
		}
	}

	return out
}
