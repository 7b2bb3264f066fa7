package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/containerlens/containerlens/internal/app"
)

// newServeCmd creates the serve command.
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API serving the container inventory of the configured source.
The server stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.Bootstrap(cmd.Context(), opts.configPath, Version, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close(context.Background())

			return rt.Serve(rt.Context(cmd.Context()))
		},
	}
}
