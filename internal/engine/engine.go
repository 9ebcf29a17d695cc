package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/repolens-dev/repolens/internal/analysis"
	"github.com/repolens-dev/repolens/internal/churn"
	"github.com/repolens-dev/repolens/internal/extract"
	"github.com/repolens-dev/repolens/internal/graph"
	"github.com/repolens-dev/repolens/internal/layers"
	"github.com/repolens-dev/repolens/internal/scanner"
)

// Analysis is the complete result of one repository pass: the dependency
// snapshot plus the derived analytics and the size-appropriate unit view.
type Analysis struct {
	Root       string                     `json:"root"`
	ScannedAt  time.Time                  `json:"scannedAt"`
	FileCount  int                        `json:"fileCount"`
	Category   layers.SizeCategory        `json:"category"`
	Snapshot   *graph.Snapshot            `json:"snapshot"`
	Complexity *analysis.ComplexityReport `json:"complexity"`
	Cycles     [][]string                 `json:"cycles"`
	Churn      map[string]float64         `json:"churn,omitempty"`
	Risks      map[string]graph.Risk      `json:"risks"`
	Units      *layers.UnitGraph          `json:"units"`
	Issues     []scanner.Issue            `json:"issues,omitempty"`
}

// Engine ties scanning, extraction, graph building and the layer engine
// together, and owns the live session registry.
type Engine struct {
	scanner  *scanner.Scanner
	registry *extract.Registry
	churn    churn.Provider
	logger   *slog.Logger

	sessions *sessionRegistry
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithChurnProvider swaps the churn source. The default reads git history.
func WithChurnProvider(p churn.Provider) Option {
	return func(e *Engine) { e.churn = p }
}

// WithIgnoreRules layers configured ignore rules onto the scanner.
func WithIgnoreRules(rules []string) Option {
	return func(e *Engine) { e.scanner = scanner.New(e.registry, scanner.WithIgnoreRules(rules)) }
}

// New creates an engine with the default extractor registry.
func New(logger *slog.Logger, opts ...Option) *Engine {
	registry := extract.NewDefaultRegistry()
	e := &Engine{
		scanner:  scanner.New(registry),
		registry: registry,
		churn:    churn.NewGitProvider(90),
		logger:   logger,
		sessions: newSessionRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs the full pipeline against a repository root.
func (e *Engine) Analyze(ctx context.Context, root string) (*Analysis, error) {
	started := time.Now()

	scanned, err := e.scanner.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	e.logger.Info("scan complete", "root", root, "files", len(scanned.Files), "issues", len(scanned.Issues))

	refs, err := e.registry.ExtractAll(ctx, scanned.Files)
	if err != nil {
		return nil, err
	}

	snapshot, err := graph.Build(refs)
	if err != nil {
		return nil, err
	}

	complexity := analysis.Complexity(scanned.Files, 10)
	cycles, err := analysis.Cycles(snapshot)
	if err != nil {
		return nil, err
	}

	churnCounts, err := e.churn.Counts(ctx, root)
	if err != nil {
		// churn is an enrichment; analysis proceeds without it
		e.logger.Warn("churn unavailable", "error", err)
		churnCounts = map[string]float64{}
	}

	risks := layers.RiskIndicators(snapshot, complexity, churnCounts, cycles)
	annotate(snapshot, complexity, risks)

	units := layers.SelectUnits(snapshot, len(scanned.Files))

	e.logger.Info("analysis complete",
		"root", root,
		"nodes", len(snapshot.Nodes),
		"edges", len(snapshot.Edges),
		"cycles", len(cycles),
		"category", string(units.Category),
		"elapsed", time.Since(started),
	)

	return &Analysis{
		Root:       root,
		ScannedAt:  started,
		FileCount:  len(scanned.Files),
		Category:   units.Category,
		Snapshot:   snapshot,
		Complexity: complexity,
		Cycles:     cycles,
		Churn:      churnCounts,
		Risks:      risks,
		Units:      units,
		Issues:     scanned.Issues,
	}, nil
}

// annotate writes per-file complexity and risk onto the snapshot nodes.
func annotate(s *graph.Snapshot, complexity *analysis.ComplexityReport, risks map[string]graph.Risk) {
	scores := make(map[string]int, len(complexity.Files))
	for _, f := range complexity.Files {
		scores[f.Path] = f.Score
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		n.Complexity = scores[n.ID]
		if r, ok := risks[n.ID]; ok {
			risk := r
			n.Risk = &risk
		}
	}
}
