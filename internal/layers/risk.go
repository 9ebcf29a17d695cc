package layers

import (
	"sort"

	"github.com/repolens-dev/repolens/internal/analysis"
	"github.com/repolens-dev/repolens/internal/graph"
)

// Fusion weights. Each component is normalized to [0,1] first, so the fused
// score is monotonic in every input.
const (
	riskCentralityWeight = 0.4
	riskComplexityWeight = 0.3
	riskChurnWeight      = 0.3
)

// RiskIndicators fuses normalized centrality, complexity and churn into a
// per-node risk score. A node crosses the high-impact marker when its
// centrality sits in the snapshot's top decile or it participates in a
// detected cycle. Missing churn entries count as zero.
func RiskIndicators(s *graph.Snapshot, complexity *analysis.ComplexityReport, churn map[string]float64, cycles [][]string) map[string]graph.Risk {
	centrality := analysis.Centrality(s)

	centralityByNode := make(map[string]float64, len(centrality))
	for _, c := range centrality {
		centralityByNode[c.Node] = c.Score
	}

	complexityByNode := make(map[string]float64)
	if complexity != nil && complexity.Summary.Max > 0 {
		for _, f := range complexity.Files {
			complexityByNode[f.Path] = float64(f.Score) / float64(complexity.Summary.Max)
		}
	}

	maxChurn := 0.0
	for _, v := range churn {
		if v > maxChurn {
			maxChurn = v
		}
	}

	inCycle := make(map[string]bool)
	for _, cycle := range cycles {
		for _, id := range cycle {
			inCycle[id] = true
		}
	}

	threshold := topDecileThreshold(centrality)

	out := make(map[string]graph.Risk, len(s.Nodes))
	for _, n := range s.Nodes {
		r := graph.Risk{
			Centrality: centralityByNode[n.ID],
			Complexity: complexityByNode[n.ID],
		}
		if maxChurn > 0 {
			r.Churn = churn[n.ID] / maxChurn
		}
		r.Score = riskCentralityWeight*r.Centrality +
			riskComplexityWeight*r.Complexity +
			riskChurnWeight*r.Churn
		r.HighImpact = inCycle[n.ID] || (r.Centrality > 0 && r.Centrality >= threshold)
		out[n.ID] = r
	}

	return out
}

// topDecileThreshold returns the centrality score a node must reach to sit
// among the top 10% of the snapshot.
func topDecileThreshold(scores []analysis.CentralityScore) float64 {
	if len(scores) == 0 {
		return 1.0
	}

	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		values = append(values, s.Score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	k := len(values) / 10
	if k < 1 {
		k = 1
	}
	return values[k-1]
}
