package layers

import (
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/graph"
)

// UnitType identifies how a unit was formed.
type UnitType string

const (
	UnitFile    UnitType = "file"
	UnitFolder  UnitType = "folder"
	UnitCluster UnitType = "cluster"
)

// Unit is one node in the aggregated view: a single file for small
// repositories, a top-level folder for medium ones, or a connectivity
// cluster for large ones.
type Unit struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  UnitType `json:"type"`
	Files []string `json:"files"`
}

// UnitGraph is the aggregated graph handed to presentation.
type UnitGraph struct {
	Category SizeCategory `json:"category"`
	Units    []Unit       `json:"units"`
	Edges    []graph.Edge `json:"edges"`
}

// clusterLinkWeight is the combined cross-directory edge weight above which
// two mutually connected directories merge into one cluster.
const clusterLinkWeight = 4

// SelectUnits aggregates a snapshot into size-appropriate units. Inter-unit
// edge weights sum the constituent file edges; intra-unit edges are dropped.
func SelectUnits(s *graph.Snapshot, totalFiles int) *UnitGraph {
	category := ClassifySize(totalFiles)

	switch category {
	case SizeSmall:
		return fileUnits(s)
	case SizeMedium:
		return folderUnits(s)
	default:
		return clusterUnits(s)
	}
}

func fileUnits(s *graph.Snapshot) *UnitGraph {
	out := &UnitGraph{Category: SizeSmall, Units: make([]Unit, 0, len(s.Nodes))}

	for _, n := range s.Nodes {
		out.Units = append(out.Units, Unit{ID: n.ID, Label: n.Label, Type: UnitFile, Files: []string{n.ID}})
	}
	out.Edges = make([]graph.Edge, len(s.Edges))
	copy(out.Edges, s.Edges)

	return out
}

func folderUnits(s *graph.Snapshot) *UnitGraph {
	membership := make(map[string]string, len(s.Nodes))
	for _, n := range s.Nodes {
		membership[n.ID] = "folder:" + topLevelDir(n.ID)
	}
	return aggregate(s, SizeMedium, UnitFolder, membership, nil)
}

// clusterUnits groups top-level directories, then merges directory pairs
// with high mutual connectivity. An isolated directory with no strong
// external connectivity keeps its own cluster.
func clusterUnits(s *graph.Snapshot) *UnitGraph {
	dirs := make([]string, 0)
	seen := make(map[string]bool)
	fileDir := make(map[string]string, len(s.Nodes))
	for _, n := range s.Nodes {
		dir := topLevelDir(n.ID)
		fileDir[n.ID] = dir
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	type pair struct {
		a, b   string
		weight int
	}
	cross := make(map[[2]string]int)
	for _, e := range s.Edges {
		a, b := fileDir[e.Source], fileDir[e.Target]
		if a == b {
			continue
		}
		cross[[2]string{a, b}] += e.Weight
	}

	pairs := make([]pair, 0)
	for key, w := range cross {
		if key[0] > key[1] {
			continue // handled from the (smaller, larger) side
		}
		back := cross[[2]string{key[1], key[0]}]
		if back == 0 {
			continue // not mutual
		}
		pairs = append(pairs, pair{a: key[0], b: key[1], weight: w + back})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].weight != pairs[j].weight {
			return pairs[i].weight > pairs[j].weight
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	parent := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		parent[dir] = dir
	}
	var find func(string) string
	find = func(d string) string {
		if parent[d] != d {
			parent[d] = find(parent[d])
		}
		return parent[d]
	}
	for _, p := range pairs {
		if p.weight < clusterLinkWeight {
			continue
		}
		ra, rb := find(p.a), find(p.b)
		if ra == rb {
			continue
		}
		// root by smallest name for stable cluster ids
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	members := make(map[string][]string)
	for _, dir := range dirs {
		root := find(dir)
		members[root] = append(members[root], dir)
	}

	membership := make(map[string]string, len(s.Nodes))
	labels := make(map[string]string)
	for _, n := range s.Nodes {
		root := find(fileDir[n.ID])
		membership[n.ID] = "cluster:" + root
	}
	for root, dirs := range members {
		sort.Strings(dirs)
		labels["cluster:"+root] = strings.Join(dirs, "+")
	}

	return aggregate(s, SizeLarge, UnitCluster, membership, labels)
}

// aggregate folds file nodes into units by membership, summing edge weights
// across unit boundaries and discarding intra-unit edges.
func aggregate(s *graph.Snapshot, category SizeCategory, unitType UnitType, membership map[string]string, labels map[string]string) *UnitGraph {
	files := make(map[string][]string)
	for _, n := range s.Nodes {
		unitID := membership[n.ID]
		files[unitID] = append(files[unitID], n.ID)
	}

	out := &UnitGraph{Category: category, Units: make([]Unit, 0, len(files))}
	for unitID, members := range files {
		sort.Strings(members)
		label := labels[unitID]
		if label == "" {
			label = strings.TrimPrefix(strings.TrimPrefix(unitID, "folder:"), "cluster:")
		}
		out.Units = append(out.Units, Unit{ID: unitID, Label: label, Type: unitType, Files: members})
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

// Unit returns the unit with the given id.
func (u *UnitGraph) Unit(id string) (*Unit, bool) {
	for i := range u.Units {
		if u.Units[i].ID == id {
			return &u.Units[i], true
		}
	}
	return nil, false
}

// topLevelDir returns the first path segment of a file id, or "." for
// files at the repository root.
func topLevelDir(id string) string {
	if idx := strings.Index(id, "/"); idx != -1 {
		return id[:idx]
	}
	return "."
}
