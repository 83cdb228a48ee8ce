package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blogem/lanauthgate/app"
)

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gate (foreground)",
		Example: `  # Start with defaults on port 8000
  lanauthgate serve

  # Start with a config file
  lanauthgate serve --config /etc/lanauthgate/gate.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			gate, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := gate.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			}()

			return gate.Run(ctx)
		},
	}
}
