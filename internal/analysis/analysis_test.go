package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/extract"
	"github.com/repolens-dev/repolens/internal/graph"
)

// snapshotFromEdges builds a snapshot of javascript files where each entry
// maps a file to the files it imports.
func snapshotFromEdges(t *testing.T, files map[string][]string) *graph.Snapshot {
	t.Helper()

	refs := make([]extract.FileRefs, 0, len(files))
	for file, imports := range files {
		fr := extract.FileRefs{File: extract.SourceFile{Path: file, Language: "javascript"}}
		for i, target := range imports {
			fr.Refs = append(fr.Refs, extract.RawReference{Specifier: "./" + target, Line: i + 1})
		}
		refs = append(refs, fr)
	}

	s, err := graph.Build(refs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestCentralityScenario(t *testing.T) {
	// index -> utils, index -> App, App -> utils, App -> Header, App -> api
	s := snapshotFromEdges(t, map[string][]string{
		"index.js":  {"utils", "App"},
		"App.js":    {"utils", "Header", "api"},
		"utils.js":  nil,
		"Header.js": nil,
		"api.js":    nil,
	})

	scores := Centrality(s)
	if len(scores) != 5 {
		t.Fatalf("expected 5 scores, got %d", len(scores))
	}

	rank := make(map[string]int, len(scores))
	for i, sc := range scores {
		rank[sc.Node] = i
	}
	if rank["utils.js"] >= rank["Header.js"] {
		t.Fatalf("expected utils ranked above Header: %+v", scores)
	}

	top := MostUsed(s, 1)
	if len(top) != 1 || top[0].ID != "utils.js" {
		t.Fatalf("expected utils.js as most used, got %+v", top)
	}
	if top[0].InDegree != 2 {
		t.Fatalf("expected in-degree 2, got %d", top[0].InDegree)
	}
}

func TestCentralityNormalizedAndDeterministic(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{
		"a.js": {"b"},
		"b.js": nil,
		"c.js": {"b"},
	})

	scores := Centrality(s)
	if scores[0].Node != "b.js" || scores[0].Score != 1.0 {
		t.Fatalf("expected b.js with score 1.0 first, got %+v", scores[0])
	}
	// a and c tie on degrees; id ascending breaks the tie.
	if scores[1].Node != "a.js" || scores[2].Node != "c.js" {
		t.Fatalf("unexpected tie-break order: %+v", scores)
	}
}

func TestMostUsedClampsK(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{"a.js": nil, "b.js": nil})

	if got := MostUsed(s, 10); len(got) != 2 {
		t.Fatalf("expected k clamped to 2, got %d", len(got))
	}
	if got := MostUsed(s, -1); len(got) != 0 {
		t.Fatalf("expected empty result for negative k, got %d", len(got))
	}
}

func TestCyclesTriangle(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{
		"a.js": {"b"},
		"b.js": {"c"},
		"c.js": {"a"},
	})

	cycles, err := Cycles(s)
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	want := [][]string{{"a.js", "b.js", "c.js"}}
	if !reflect.DeepEqual(cycles, want) {
		t.Fatalf("unexpected cycles: got %+v want %+v", cycles, want)
	}
}

func TestCyclesAcyclic(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{
		"a.js": {"b"},
		"b.js": {"c"},
		"c.js": nil,
	})

	cycles, err := Cycles(s)
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	if len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %+v", cycles)
	}
}

func TestCyclesTwoIndependent(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{
		"a.js": {"b"},
		"b.js": {"a"},
		"x.js": {"y"},
		"y.js": {"x"},
	})

	cycles, err := Cycles(s)
	if err != nil {
		t.Fatalf("Cycles: %v", err)
	}
	want := [][]string{{"a.js", "b.js"}, {"x.js", "y.js"}}
	if !reflect.DeepEqual(cycles, want) {
		t.Fatalf("unexpected cycles: got %+v want %+v", cycles, want)
	}
}

func TestShortestPathDiamond(t *testing.T) {
	// A->B, B->C, A->D, D->C: either [A,B,C] or [A,D,C], length must be 3.
	s := snapshotFromEdges(t, map[string][]string{
		"A.js": {"B", "D"},
		"B.js": {"C"},
		"C.js": nil,
		"D.js": {"C"},
	})

	path, err := ShortestPath(s, "A.js", "C.js")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("expected path length 3, got %v", path)
	}
	if path[0] != "A.js" || path[2] != "C.js" {
		t.Fatalf("path endpoints wrong: %v", path)
	}
}

func TestShortestPathSameNode(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{"x.js": nil})

	path, err := ShortestPath(s, "x.js", "x.js")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if !reflect.DeepEqual(path, []string{"x.js"}) {
		t.Fatalf("expected trivial path, got %v", path)
	}
}

func TestShortestPathErrors(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{"a.js": nil, "b.js": nil})

	if _, err := ShortestPath(s, "missing.js", "a.js"); !errors.Is(err, apperr.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
	if _, err := ShortestPath(s, "a.js", "b.js"); !errors.Is(err, apperr.ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestImpact(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{
		"index.js": {"App"},
		"App.js":   {"utils"},
		"utils.js": nil,
	})

	result, err := Impact(s, "utils.js")
	if err != nil {
		t.Fatalf("Impact: %v", err)
	}
	wantForward := []string{"App.js", "index.js"}
	if !reflect.DeepEqual(result.Forward, wantForward) {
		t.Fatalf("forward set: got %v want %v", result.Forward, wantForward)
	}
	if len(result.Backward) != 0 {
		t.Fatalf("expected empty backward set, got %v", result.Backward)
	}
	if result.Score != 2.0/3.0 {
		t.Fatalf("unexpected score %v", result.Score)
	}
}

func TestImpactTerminatesOnCycle(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{
		"a.js": {"b"},
		"b.js": {"a"},
	})

	result, err := Impact(s, "a.js")
	if err != nil {
		t.Fatalf("Impact: %v", err)
	}
	if !reflect.DeepEqual(result.Forward, []string{"b.js"}) {
		t.Fatalf("forward set: %v", result.Forward)
	}
	if !reflect.DeepEqual(result.Backward, []string{"b.js"}) {
		t.Fatalf("backward set: %v", result.Backward)
	}
}

func TestImpactMissingNode(t *testing.T) {
	s := snapshotFromEdges(t, map[string][]string{"a.js": nil})

	if _, err := Impact(s, "nope.js"); !errors.Is(err, apperr.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestComplexity(t *testing.T) {
	files := []extract.SourceFile{
		{Path: "plain.js", Language: "javascript", Content: "const x = 1;\n"},
		{Path: "branchy.js", Language: "javascript", Content: "if (a && b) {}\nfor (;;) {}\n// if commented\n"},
		{Path: "script.py", Language: "python", Content: "if a and b:\n    pass\n"},
	}

	report := Complexity(files, 2)

	byPath := make(map[string]int)
	for _, f := range report.Files {
		byPath[f.Path] = f.Score
	}
	if byPath["plain.js"] != 1 {
		t.Errorf("plain.js score = %d, want 1", byPath["plain.js"])
	}
	// if + && + for = 3 decision points, baseline 1.
	if byPath["branchy.js"] != 4 {
		t.Errorf("branchy.js score = %d, want 4", byPath["branchy.js"])
	}
	// if + and = 2 decision points, baseline 1.
	if byPath["script.py"] != 3 {
		t.Errorf("script.py score = %d, want 3", byPath["script.py"])
	}

	if report.Summary.Files != 3 || report.Summary.Max != 4 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
	if len(report.Summary.Top) != 2 || report.Summary.Top[0].Path != "branchy.js" {
		t.Fatalf("unexpected top files: %+v", report.Summary.Top)
	}
}
