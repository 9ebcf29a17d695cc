package ignore

import "testing"

func TestMatcher_DefaultAndUserOverrides(t *testing.T) {
	m := NewMatcher([]string{
		"*.tmp",
		"docs/",
		"!docs/api.md",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: ".git/config", isDir: false, ignored: true},
		{path: ".repolens/snapshot.json", isDir: false, ignored: true},
		{path: "node_modules/pkg/index.js", isDir: false, ignored: true},
		{path: "vendor/lib/a.go", isDir: false, ignored: true},
		{path: "nested/cache.tmp", isDir: false, ignored: true},
		{path: "docs/internal/notes.md", isDir: false, ignored: true},
		{path: "docs/api.md", isDir: false, ignored: false},
		{path: "src/main.go", isDir: false, ignored: false},
	}

	for _, tc := range cases {
		got := m.ShouldIgnore(tc.path, tc.isDir)
		if got != tc.ignored {
			t.Fatalf("path %s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestMatcher_DirectoryRules(t *testing.T) {
	m := NewMatcher(nil)

	if !m.ShouldIgnore("node_modules", true) {
		t.Fatalf("expected node_modules directory to be ignored")
	}
	if m.ShouldIgnore("src", true) {
		t.Fatalf("expected src directory to be included")
	}
}

func TestMatcher_CommentsAndBlanksSkipped(t *testing.T) {
	m := NewMatcher([]string{"# a comment", "", "  ", "*.log"})

	if !m.ShouldIgnore("server.log", false) {
		t.Fatalf("expected *.log rule to apply")
	}
	if m.ShouldIgnore("# a comment", false) {
		t.Fatalf("comment line must not become a rule")
	}
}
