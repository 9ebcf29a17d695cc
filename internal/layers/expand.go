package layers

import (
	"fmt"
	"sort"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/graph"
)

// Expand drills into an aggregate unit: the unit id is added to the session's
// expanded set and the returned graph substitutes the aggregate with its
// constituent files, re-routing edges so intra-unit edges become visible and
// child-to-external edges inherit the unit boundaries. Expanding a file unit
// is an error.
func Expand(state *State, unitID string, s *graph.Snapshot, units *UnitGraph) (*State, *UnitGraph, error) {
	unit, ok := units.Unit(unitID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unit %q", apperr.ErrNodeNotFound, unitID)
	}
	if unit.Type == UnitFile {
		return nil, nil, fmt.Errorf("%w: unit %q is not an aggregate", apperr.ErrOutOfRange, unitID)
	}

	next := state.clone()
	next.ExpandedUnits[unitID] = true
	next.Version++

	return next, Render(next, s, units), nil
}

// Render produces the unit graph for a session state: every expanded
// aggregate is replaced by its constituent file units, and edges are
// re-aggregated against the substituted membership.
func Render(state *State, s *graph.Snapshot, units *UnitGraph) *UnitGraph {
	if len(state.ExpandedUnits) == 0 {
		return units
	}

	// membership maps each file either to itself (expanded unit) or to
	// its containing aggregate.
	membership := make(map[string]string, len(s.Nodes))
	out := &UnitGraph{Category: units.Category, Units: make([]Unit, 0, len(units.Units))}

	for _, unit := range units.Units {
		if state.ExpandedUnits[unit.ID] && unit.Type != UnitFile {
			for _, file := range unit.Files {
				membership[file] = file
				label := file
				if node, ok := s.Node(file); ok {
					label = node.Label
				}
				out.Units = append(out.Units, Unit{ID: file, Label: label, Type: UnitFile, Files: []string{file}})
			}
			continue
		}
		for _, file := range unit.Files {
			membership[file] = unit.ID
		}
		out.Units = append(out.Units, unit)
	}
	sort.Slice(out.Units, func(i, j int) bool { return out.Units[i].ID < out.Units[j].ID })

	weights := make(map[[2]string]int)
	for _, e := range s.Edges {
		a, b := membership[e.Source], membership[e.Target]
		if a == b {
			continue
		}
		weights[[2]string{a, b}] += e.Weight
	}
	out.Edges = make([]graph.Edge, 0, len(weights))
	for key, w := range weights {
		out.Edges = append(out.Edges, graph.Edge{Source: key[0], Target: key[1], Weight: w, Kind: graph.EdgeInternal})
	}
	sort.Slice(out.Edges, func(i, j int) bool {
		if out.Edges[i].Source != out.Edges[j].Source {
			return out.Edges[i].Source < out.Edges[j].Source
		}
		return out.Edges[i].Target < out.Edges[j].Target
	})

	return out
}
