package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/containerlens/containerlens/internal/adapters/dto"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

func newAccessCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Check whether the container views apply",
	}
	cmd.AddCommand(newAccessListCmd(opts))
	cmd.AddCommand(newAccessTabCmd(opts))
	return cmd
}

func newAccessListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list DEVICE_ID",
		Short: "Check whether a device has a container list view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				allowed, err := s.Access.CanViewContainerList(ctx, args[0])
				if err != nil {
					warn(cmd.ErrOrStderr(), "%v", err)
				}
				return renderVerdict(cmd, opts.output, allowed)
			})
		},
	}
}

func newAccessTabCmd(opts *rootOptions) *cobra.Command {
	var serviceType string

	cmd := &cobra.Command{
		Use:   "tab OBJECT_ID",
		Short: "Check whether an object has a container detail tab",
		Long: `Check whether an object has a container detail tab. Without --service-type
the object is loaded from the inventory and its own service type is used, falling
back to the service type of its parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				chain := []domain.ViewContext{{ID: args[0], ServiceType: serviceType}}
				if serviceType == "" {
					loaded, err := s.Access.LoadViewChain(ctx, args[0])
					if err != nil {
						logging.FromCtx(ctx).Debug().Err(err).Str(logging.FieldEntityID, args[0]).Msg("view context unavailable")
						warn(cmd.ErrOrStderr(), "%v", err)
						return renderVerdict(cmd, opts.output, false)
					}
					chain = loaded
				}

				resolved := s.Access.ResolveViewContext(chain...)
				return renderVerdict(cmd, opts.output, s.Access.CanViewContainerTab(resolved.ServiceType))
			})
		},
	}

	cmd.Flags().StringVar(&serviceType, "service-type", "", "Service type of the object, skips the inventory lookup")

	return cmd
}

func renderVerdict(cmd *cobra.Command, format string, allowed bool) error {
	return render(cmd.OutOrStdout(), format, dto.AccessResponse{Allowed: allowed}, func() string {
		return verdict(allowed)
	})
}
