package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens-dev/repolens/internal/churn"
	"github.com/repolens-dev/repolens/internal/config"
	"github.com/repolens-dev/repolens/internal/engine"
	"github.com/repolens-dev/repolens/internal/fileutil"
	"github.com/repolens-dev/repolens/internal/store"
	"github.com/repolens-dev/repolens/pkg/logging"
)

func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

// setup loads configuration and builds a logger honoring the persistent
// flags shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read --config flag: %w", err)
	}

	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	level := cfg.Log.Level
	if flagLevel, err := cmd.Flags().GetString("log-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	logger := logging.New(logging.Config{
		Level:   level,
		JSON:    cfg.Log.Format == "json",
		Service: "repolens",
	})

	return cfg, logger, nil
}

func newEngine(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) *engine.Engine {
	opts := []engine.Option{}
	if len(cfg.Scan.Ignore) > 0 {
		opts = append(opts, engine.WithIgnoreRules(cfg.Scan.Ignore))
	}
	noChurn, _ := cmd.Flags().GetBool("no-churn")
	if noChurn || !cfg.Churn.Enabled {
		opts = append(opts, engine.WithChurnProvider(&churn.StaticProvider{}))
	} else {
		opts = append(opts, engine.WithChurnProvider(churn.NewGitProvider(cfg.Churn.WindowDays)))
	}
	return engine.New(logger, opts...)
}

// loadAnalysis reuses a saved analysis when one exists, otherwise runs the
// pipeline (without persisting, that is scan's job).
func loadAnalysis(ctx context.Context, cmd *cobra.Command, root string) (*engine.Analysis, error) {
	if a, err := store.Load(root); err == nil {
		return a, nil
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	return newEngine(cmd, cfg, logger).Analyze(ctx, root)
}

func printJSON(value any) error {
	return fileutil.PrintJSON(os.Stdout, value)
}
