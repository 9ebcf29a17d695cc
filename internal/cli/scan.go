package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/repolens-dev/repolens/internal/store"
)

// ScanSummary is the machine-readable result of one scan run.
type ScanSummary struct {
	Root       string `json:"root"`
	Files      int    `json:"files"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Externals  int    `json:"externals"`
	Cycles     int    `json:"cycles"`
	Isolated   int    `json:"isolated"`
	Category   string `json:"category"`
	Issues     int    `json:"issues"`
	Saved      bool   `json:"saved"`
	DurationMS int64  `json:"duration_ms"`
}

func RunScan(cmd *cobra.Command, args []string) error {
	start := time.Now()
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return fmt.Errorf("failed to read --no-save flag: %w", err)
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	a, err := newEngine(cmd, cfg, logger).Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	if !noSave {
		if err := store.Save(root, a); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
	}

	stats := a.Snapshot.Stats()
	summary := ScanSummary{
		Root:       a.Root,
		Files:      a.FileCount,
		Nodes:      stats.Nodes,
		Edges:      stats.Edges,
		Externals:  stats.Externals,
		Cycles:     len(a.Cycles),
		Isolated:   stats.Isolated,
		Category:   string(a.Category),
		Issues:     len(a.Issues),
		Saved:      !noSave,
		DurationMS: time.Since(start).Milliseconds(),
	}

	if asJSON {
		return printJSON(summary)
	}

	fmt.Printf("Scanned %s\n", summary.Root)
	fmt.Printf("  files:     %d (%s repository)\n", summary.Files, summary.Category)
	fmt.Printf("  graph:     %d nodes, %d edges, %d external references\n", summary.Nodes, summary.Edges, summary.Externals)
	fmt.Printf("  cycles:    %d\n", summary.Cycles)
	fmt.Printf("  isolated:  %d\n", summary.Isolated)
	if summary.Issues > 0 {
		fmt.Printf("  issues:    %d (see .repolens/analysis.json)\n", summary.Issues)
	}
	fmt.Printf("  took:      %dms\n", summary.DurationMS)
	return nil
}
