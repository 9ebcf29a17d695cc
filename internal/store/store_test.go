package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/churn"
	"github.com/repolens-dev/repolens/internal/engine"
)

func analyzeFixture(t *testing.T) (string, *engine.Analysis) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a.js": "import './b.js';\n",
		"b.js": "",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	e := engine.New(slog.New(slog.NewTextHandler(io.Discard, nil)), engine.WithChurnProvider(&churn.StaticProvider{}))
	a, err := e.Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return root, a
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root, a := analyzeFixture(t)

	if err := Save(root, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.FileCount != a.FileCount {
		t.Errorf("fileCount = %d, want %d", loaded.FileCount, a.FileCount)
	}
	if len(loaded.Snapshot.Nodes) != len(a.Snapshot.Nodes) {
		t.Errorf("nodes = %d, want %d", len(loaded.Snapshot.Nodes), len(a.Snapshot.Nodes))
	}
	if !loaded.Snapshot.HasNode("a.js") {
		t.Errorf("node lookup broken after reload")
	}
	if loaded.Category != a.Category {
		t.Errorf("category = %s, want %s", loaded.Category, a.Category)
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	root, a := analyzeFixture(t)
	path := filepath.Join(root, Dir, "analysis.json")

	if err := Save(root, a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := Save(root, a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("saving the same analysis twice produced different bytes")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"version":"0","analysis":{"root":"x"}}`)
	if err := os.WriteFile(filepath.Join(dir, "analysis.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestLoadRejectsCorruptPayload(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"version":"1","analysis":{`)
	if err := os.WriteFile(filepath.Join(dir, "analysis.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
