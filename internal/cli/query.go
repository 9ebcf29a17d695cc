package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repolens-dev/repolens/internal/analysis"
)

func RunCycles(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	a, err := loadAnalysis(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(map[string]any{"cycles": a.Cycles})
	}

	if len(a.Cycles) == 0 {
		fmt.Println("No circular dependencies found.")
		return nil
	}
	fmt.Printf("%d circular dependencies:\n", len(a.Cycles))
	for i, cycle := range a.Cycles {
		fmt.Printf("  %d. %s -> %s\n", i+1, strings.Join(cycle, " -> "), cycle[0])
	}
	return nil
}

func RunPath(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(nil)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	a, err := loadAnalysis(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}

	from, to := args[0], args[1]
	path, err := analysis.ShortestPath(a.Snapshot, from, to)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(map[string]any{"path": path, "length": len(path) - 1})
	}

	fmt.Printf("%s (%d hops)\n", strings.Join(path, " -> "), len(path)-1)
	return nil
}

func RunImpact(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(nil)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	a, err := loadAnalysis(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}

	result, err := analysis.Impact(a.Snapshot, args[0])
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(result)
	}

	fmt.Printf("%s\n", result.Node)
	fmt.Printf("  depended on by (%d):\n", len(result.Forward))
	for _, f := range result.Forward {
		fmt.Printf("    %s\n", f)
	}
	fmt.Printf("  depends on (%d):\n", len(result.Backward))
	for _, f := range result.Backward {
		fmt.Printf("    %s\n", f)
	}
	fmt.Printf("  impact score: %.2f\n", result.Score)
	return nil
}

// Hotspot pairs a file with the signals that make it risky to change.
type Hotspot struct {
	File       string  `json:"file"`
	Centrality float64 `json:"centrality"`
	Complexity int     `json:"complexity"`
	Risk       float64 `json:"risk"`
	HighImpact bool    `json:"highImpact"`
}

func RunHotspots(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return fmt.Errorf("failed to read --top flag: %w", err)
	}

	a, err := loadAnalysis(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}

	complexityByFile := make(map[string]int, len(a.Complexity.Files))
	for _, f := range a.Complexity.Files {
		complexityByFile[f.Path] = f.Score
	}

	hotspots := make([]Hotspot, 0, len(a.Snapshot.Nodes))
	for _, n := range a.Snapshot.Nodes {
		r := a.Risks[n.ID]
		hotspots = append(hotspots, Hotspot{
			File:       n.ID,
			Centrality: r.Centrality,
			Complexity: complexityByFile[n.ID],
			Risk:       r.Score,
			HighImpact: r.HighImpact,
		})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Risk != hotspots[j].Risk {
			return hotspots[i].Risk > hotspots[j].Risk
		}
		return hotspots[i].File < hotspots[j].File
	})
	if top > 0 && top < len(hotspots) {
		hotspots = hotspots[:top]
	}

	if asJSON {
		return printJSON(map[string]any{"hotspots": hotspots})
	}

	fmt.Printf("%-50s %10s %10s %6s\n", "FILE", "CENTRALITY", "COMPLEXITY", "RISK")
	for _, h := range hotspots {
		marker := ""
		if h.HighImpact {
			marker = " !"
		}
		fmt.Printf("%-50s %10.2f %10d %6.2f%s\n", h.File, h.Centrality, h.Complexity, h.Risk, marker)
	}
	return nil
}

func RunUnits(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	a, err := loadAnalysis(cmd.Context(), cmd, root)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(a.Units)
	}

	fmt.Printf("%s repository: %d units\n", a.Units.Category, len(a.Units.Units))
	for _, u := range a.Units.Units {
		fmt.Printf("  %-40s %s (%d files)\n", u.ID, u.Type, len(u.Files))
	}
	for _, e := range a.Units.Edges {
		fmt.Printf("  %s -> %s (weight %d)\n", e.Source, e.Target, e.Weight)
	}
	return nil
}
