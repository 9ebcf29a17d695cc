package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/repolens-dev/repolens/internal/server"
)

func RunServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("failed to read --addr flag: %w", err)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := newEngine(cmd, cfg, logger)
	srv := server.New(e, logger, cfg.Server.Metrics)
	return srv.Run(ctx, addr)
}
