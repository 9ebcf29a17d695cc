package graph

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/extract"
)

// NodeKind distinguishes file nodes from aggregate units.
type NodeKind string

const (
	KindFile    NodeKind = "file"
	KindFolder  NodeKind = "folder-unit"
	KindCluster NodeKind = "cluster-unit"
)

// EdgeKind records whether a reference resolved to a repository file.
type EdgeKind string

const (
	EdgeInternal EdgeKind = "internal"
	EdgeExternal EdgeKind = "external"
)

// Risk carries the fused risk indicator attached to a node. Every component
// score is normalized to [0,1].
type Risk struct {
	Centrality float64 `json:"centrality"`
	Complexity float64 `json:"complexity"`
	Churn      float64 `json:"churn"`
	Score      float64 `json:"score"`
	HighImpact bool    `json:"highImpact"`
}

// Node is one source file, or an aggregate unit when the snapshot has been
// grouped by the layer engine.
type Node struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Dir        string   `json:"dir"`
	Kind       NodeKind `json:"kind"`
	Language   string   `json:"language,omitempty"`
	InDegree   int      `json:"inDegree"`
	OutDegree  int      `json:"outDegree"`
	Complexity int      `json:"complexity,omitempty"`
	Risk       *Risk    `json:"risk,omitempty"`
	Children   []string `json:"children,omitempty"`
}

// Edge is a directed source->target relationship. Weight counts the distinct
// import statements collapsed into the edge.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight int      `json:"weight"`
	Kind   EdgeKind `json:"kind"`
}

// Snapshot is the immutable (nodes, edges) pair for one analysis run.
// Edges holds internal edges only; External records references that did not
// resolve to a scanned file, keyed by the literal specifier. A new analysis
// run supersedes the snapshot rather than mutating it.
type Snapshot struct {
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
	External []Edge `json:"external,omitempty"`

	byID map[string]int
}

// DegreeStats summarizes the degree distribution of a snapshot.
type DegreeStats struct {
	Nodes     int     `json:"nodes"`
	Edges     int     `json:"edges"`
	AvgIn     float64 `json:"avgIn"`
	AvgOut    float64 `json:"avgOut"`
	MaxIn     int     `json:"maxIn"`
	MaxOut    int     `json:"maxOut"`
	Isolated  int     `json:"isolated"`
	Externals int     `json:"externals"`
}

// sourceExtensions is the ordered extension list tried while resolving a
// relative specifier. Order matters: first match wins.
var sourceExtensions = []string{
	".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx",
	".py", ".go", ".rb", ".rake", ".rs", ".java",
	".c", ".h", ".cpp", ".cc", ".hpp",
}

// Build resolves raw references into a graph snapshot. Every scanned file
// becomes a node, even with zero edges. An empty file list produces the
// empty graph, not an error.
func Build(files []extract.FileRefs) (*Snapshot, error) {
	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		if strings.TrimSpace(f.File.Path) == "" {
			return nil, fmt.Errorf("%w: source file with empty path", apperr.ErrInvalidInput)
		}
		p := normalizePath(f.File.Path)
		if fileSet[p] {
			return nil, fmt.Errorf("%w: duplicate path %q", apperr.ErrInvalidInput, p)
		}
		fileSet[p] = true
	}

	s := &Snapshot{
		Nodes: make([]Node, 0, len(files)),
		Edges: make([]Edge, 0),
	}

	internalWeights := make(map[[2]string]int)
	externalWeights := make(map[[2]string]int)

	for _, f := range files {
		src := normalizePath(f.File.Path)
		s.Nodes = append(s.Nodes, Node{
			ID:       src,
			Label:    path.Base(src),
			Dir:      dirOf(src),
			Kind:     KindFile,
			Language: f.File.Language,
		})

		for _, ref := range f.Refs {
			if target, ok := resolve(src, ref.Specifier, fileSet); ok {
				if target == src {
					continue
				}
				internalWeights[[2]string{src, target}]++
			} else {
				externalWeights[[2]string{src, ref.Specifier}]++
			}
		}
	}

	for key, weight := range internalWeights {
		s.Edges = append(s.Edges, Edge{Source: key[0], Target: key[1], Weight: weight, Kind: EdgeInternal})
	}
	for key, weight := range externalWeights {
		s.External = append(s.External, Edge{Source: key[0], Target: key[1], Weight: weight, Kind: EdgeExternal})
	}

	sort.Slice(s.Nodes, func(i, j int) bool { return s.Nodes[i].ID < s.Nodes[j].ID })
	sortEdges(s.Edges)
	sortEdges(s.External)

	s.reindex()
	s.countDegrees()

	return s, nil
}

// resolve maps a specifier to a node id in the scanned file set. Relative
// specifiers try the literal path, the path with each source extension
// appended, then an index file when the path is a directory. Everything
// else is external.
func resolve(source, specifier string, fileSet map[string]bool) (string, bool) {
	specifier = strings.TrimSpace(filepath.ToSlash(specifier))
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return "", false
	}

	base := path.Clean(path.Join(dirOf(source), specifier))
	if strings.HasPrefix(base, "..") {
		return "", false
	}

	if fileSet[base] {
		return base, true
	}
	for _, ext := range sourceExtensions {
		if fileSet[base+ext] {
			return base + ext, true
		}
	}
	if isDir(base, fileSet) {
		for _, ext := range sourceExtensions {
			candidate := path.Join(base, "index"+ext)
			if fileSet[candidate] {
				return candidate, true
			}
		}
	}

	return "", false
}

// Node returns the node with the given id.
func (s *Snapshot) Node(id string) (*Node, bool) {
	idx, ok := s.index()[id]
	if !ok {
		return nil, false
	}
	return &s.Nodes[idx], true
}

// HasNode reports whether id exists in the snapshot
func (s *Snapshot) HasNode(id string) bool {
	_, ok := s.index()[id]
	return ok
}

// Adjacency returns the forward adjacency over internal edges, every
// successor list sorted ascending.
func (s *Snapshot) Adjacency() map[string][]string {
	out := make(map[string][]string, len(s.Nodes))
	for _, e := range s.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}

// Reverse returns the reverse adjacency over internal edges.
func (s *Snapshot) Reverse() map[string][]string {
	out := make(map[string][]string, len(s.Nodes))
	for _, e := range s.Edges {
		out[e.Target] = append(out[e.Target], e.Source)
	}
	for id := range out {
		sort.Strings(out[id])
	}
	return out
}

// Stats computes degree statistics over the snapshot.
func (s *Snapshot) Stats() DegreeStats {
	stats := DegreeStats{Nodes: len(s.Nodes), Edges: len(s.Edges), Externals: len(s.External)}
	if len(s.Nodes) == 0 {
		return stats
	}

	totalIn, totalOut := 0, 0
	for _, n := range s.Nodes {
		totalIn += n.InDegree
		totalOut += n.OutDegree
		if n.InDegree > stats.MaxIn {
			stats.MaxIn = n.InDegree
		}
		if n.OutDegree > stats.MaxOut {
			stats.MaxOut = n.OutDegree
		}
		if n.InDegree == 0 && n.OutDegree == 0 {
			stats.Isolated++
		}
	}
	stats.AvgIn = float64(totalIn) / float64(len(s.Nodes))
	stats.AvgOut = float64(totalOut) / float64(len(s.Nodes))
	return stats
}

func (s *Snapshot) index() map[string]int {
	if s.byID == nil {
		s.reindex()
	}
	return s.byID
}

func (s *Snapshot) reindex() {
	s.byID = make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		s.byID[n.ID] = i
	}
}

func (s *Snapshot) countDegrees() {
	idx := s.index()
	for _, e := range s.Edges {
		if i, ok := idx[e.Source]; ok {
			s.Nodes[i].OutDegree++
		}
		if i, ok := idx[e.Target]; ok {
			s.Nodes[i].InDegree++
		}
	}
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}

func normalizePath(p string) string {
	return path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
}

func dirOf(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}

// isDir reports whether base is a directory prefix of any scanned file.
func isDir(base string, fileSet map[string]bool) bool {
	prefix := base + "/"
	for p := range fileSet {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
