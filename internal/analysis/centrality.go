// Package analysis provides read-only analytics over an immutable graph
// snapshot: centrality, complexity, cycles, shortest paths and impact.
// Every function may run concurrently with the others on the same snapshot.
package analysis

import (
	"sort"

	"github.com/repolens-dev/repolens/internal/graph"
)

// CentralityScore pairs a node with its raw degrees and normalized score.
type CentralityScore struct {
	Node      string  `json:"node"`
	InDegree  int     `json:"inDegree"`
	OutDegree int     `json:"outDegree"`
	Score     float64 `json:"score"`
}

// inWeight biases the score toward in-degree: a file imported by many
// others is structurally more central than one that merely imports a lot.
const outWeight = 0.5

// Centrality scores every node, normalized so the most central node scores
// 1.0. Ties break on higher out-degree, then node id ascending.
func Centrality(s *graph.Snapshot) []CentralityScore {
	out := make([]CentralityScore, 0, len(s.Nodes))

	maxRaw := 0.0
	for _, n := range s.Nodes {
		raw := float64(n.InDegree) + outWeight*float64(n.OutDegree)
		if raw > maxRaw {
			maxRaw = raw
		}
		out = append(out, CentralityScore{Node: n.ID, InDegree: n.InDegree, OutDegree: n.OutDegree})
	}

	for i := range out {
		if maxRaw > 0 {
			raw := float64(out[i].InDegree) + outWeight*float64(out[i].OutDegree)
			out[i].Score = raw / maxRaw
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].OutDegree != out[j].OutDegree {
			return out[i].OutDegree > out[j].OutDegree
		}
		return out[i].Node < out[j].Node
	})

	return out
}

// MostUsed returns the top-k nodes by in-degree descending, ties broken by
// node id ascending. k is clamped to the available node count.
func MostUsed(s *graph.Snapshot, k int) []graph.Node {
	nodes := make([]graph.Node, len(s.Nodes))
	copy(nodes, s.Nodes)

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].InDegree != nodes[j].InDegree {
			return nodes[i].InDegree > nodes[j].InDegree
		}
		return nodes[i].ID < nodes[j].ID
	})

	if k < 0 {
		k = 0
	}
	if k > len(nodes) {
		k = len(nodes)
	}
	return nodes[:k]
}
