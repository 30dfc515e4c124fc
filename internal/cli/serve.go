package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ironsheep/region-hierarchy/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	server.Version = version
	logger.Debug("starting MCP server", "version", version, "commit", commit, "preset", cfg.Preset)

	err := server.NewWithConfig(cfg, logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Debug("server stopped")
	}
	return err
}
