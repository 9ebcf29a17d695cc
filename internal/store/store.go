// Package store persists analysis results under .repolens/ so follow-up
// commands (cycles, path, impact) can reuse a scan instead of repeating it.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/engine"
	"github.com/repolens-dev/repolens/internal/fileutil"
)

const (
	// Dir is the per-repository data directory.
	Dir = ".repolens"

	analysisFile   = "analysis.json"
	currentVersion = "1"
)

type envelope struct {
	Version  string           `json:"version"`
	SavedAt  time.Time        `json:"savedAt"`
	Analysis *engine.Analysis `json:"analysis"`
}

// Save writes the analysis to root/.repolens/analysis.json, creating the
// directory if needed. Output is indented JSON with sorted content, so
// saving an identical analysis produces identical bytes.
func Save(root string, a *engine.Analysis) error {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	env := envelope{Version: currentVersion, SavedAt: a.ScannedAt, Analysis: a}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return fileutil.WriteIfChanged(filepath.Join(dir, analysisFile), data)
}

// Load reads a previously saved analysis. A missing file maps to
// ErrNotFound so callers can tell "run scan first" apart from corruption.
func Load(root string) (*engine.Analysis, error) {
	path := filepath.Join(root, Dir, analysisFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: no saved analysis at %s", apperr.ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", apperr.ErrInvalidInput, path, err)
	}
	if env.Version != currentVersion {
		return nil, fmt.Errorf("%w: analysis version %q, want %q", apperr.ErrInvalidInput, env.Version, currentVersion)
	}
	if env.Analysis == nil {
		return nil, fmt.Errorf("%w: empty analysis in %s", apperr.ErrInvalidInput, path)
	}

	return env.Analysis, nil
}
