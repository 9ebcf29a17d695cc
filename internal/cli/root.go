package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repolens",
		Short: "Map and explore code relationships across a repository",
		Long: `Repolens scans a repository, extracts import relationships across
languages, and builds a weighted dependency graph you can query for
cycles, shortest paths, change impact and hotspots.

Scan results are written to .repolens/ so follow-up queries reuse them.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: .repolens.yaml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Analyze a repository and save the dependency graph",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunScan,
	}
	scanCmd.Flags().Bool("json", false, "Print machine-readable scan summary")
	scanCmd.Flags().Bool("no-save", false, "Skip writing .repolens/analysis.json")
	scanCmd.Flags().Bool("no-churn", false, "Skip git history churn enrichment")

	cyclesCmd := &cobra.Command{
		Use:   "cycles [path]",
		Short: "List circular dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunCycles,
	}
	cyclesCmd.Flags().Bool("json", false, "Print machine-readable cycle list")

	pathCmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find the shortest dependency path between two files",
		Args:  cobra.ExactArgs(2),
		RunE:  RunPath,
	}
	pathCmd.Flags().Bool("json", false, "Print machine-readable path result")

	impactCmd := &cobra.Command{
		Use:   "impact <file>",
		Short: "Show what a file depends on and what depends on it, transitively",
		Args:  cobra.ExactArgs(1),
		RunE:  RunImpact,
	}
	impactCmd.Flags().Bool("json", false, "Print machine-readable impact result")

	hotspotsCmd := &cobra.Command{
		Use:   "hotspots [path]",
		Short: "Rank files by centrality, complexity and risk",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunHotspots,
	}
	hotspotsCmd.Flags().Bool("json", false, "Print machine-readable hotspot list")
	hotspotsCmd.Flags().Int("top", 10, "Number of files to show")

	unitsCmd := &cobra.Command{
		Use:   "units [path]",
		Short: "Show the aggregated unit view for the repository size",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunUnits,
	}
	unitsCmd.Flags().Bool("json", false, "Print machine-readable unit graph")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		RunE:  RunServe,
	}
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repolens %s\n", version)
		},
	}

	rootCmd.AddCommand(
		scanCmd,
		cyclesCmd,
		pathCmd,
		impactCmd,
		hotspotsCmd,
		unitsCmd,
		serveCmd,
		versionCmd,
	)

	return rootCmd
}
