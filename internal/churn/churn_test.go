package churn

import (
	"bytes"
	"context"
	"testing"
)

func TestParseNameOnly(t *testing.T) {
	out := bytes.NewBufferString(`
src/index.js
src/utils.js

src/index.js

README.md
`)

	counts := parseNameOnly(out)

	if counts["src/index.js"] != 2 {
		t.Errorf("src/index.js = %v, want 2", counts["src/index.js"])
	}
	if counts["src/utils.js"] != 1 {
		t.Errorf("src/utils.js = %v, want 1", counts["src/utils.js"])
	}
	if counts["README.md"] != 1 {
		t.Errorf("README.md = %v, want 1", counts["README.md"])
	}
	if len(counts) != 3 {
		t.Errorf("counts = %v, want 3 entries", counts)
	}
}

func TestGitProviderDegradesOutsideRepo(t *testing.T) {
	p := NewGitProvider(30)

	counts, err := p.Counts(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected empty counts outside a repository, got %v", counts)
	}
}

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{Table: map[string]float64{"a.js": 3}}

	counts, err := p.Counts(context.Background(), ".")
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	counts["a.js"] = 99
	if p.Table["a.js"] != 3 {
		t.Fatalf("provider table must not alias returned map")
	}

	empty := &StaticProvider{}
	counts, err = empty.Counts(context.Background(), ".")
	if err != nil || len(counts) != 0 {
		t.Fatalf("empty provider: counts=%v err=%v", counts, err)
	}
}
