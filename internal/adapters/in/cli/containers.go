package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/containerlens/containerlens/internal/adapters/dto"
	"github.com/containerlens/containerlens/internal/adapters/in/cli/ui/components"
	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/domain"
)

func newContainersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "containers",
		Aliases: []string{"container", "c"},
		Short:   "Inspect the containers of a device",
	}

	cmd.AddCommand(newContainersListCmd(opts))
	cmd.AddCommand(newContainersGetCmd(opts))
	cmd.AddCommand(newContainersActionCmd(opts, "stop"))
	cmd.AddCommand(newContainersActionCmd(opts, "remove"))
	cmd.AddCommand(newCapabilitiesCmd(opts))

	return cmd
}

func newContainersListCmd(opts *rootOptions) *cobra.Command {
	var (
		query         string
		includeGroups bool
	)

	cmd := &cobra.Command{
		Use:     "list DEVICE_ID",
		Aliases: []string{"ls"},
		Short:   "List the active containers of a device",
		Long: `List the containers a device publishes. Containers without an engine id and
uninstalled containers are hidden. Containers belonging to a compose project are only
listed with --groups.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				containers, err := s.Containers.Search(ctx, args[0], in.SearchOptions{
					Query:         query,
					IncludeGroups: includeGroups,
				})
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, dto.FromContainers(containers), func() string {
					return containersTable(containers)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive text matched against name, image and engine id")
	cmd.Flags().BoolVarP(&includeGroups, "groups", "g", false, "Include containers that belong to a container group")

	return cmd
}

func newContainersGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get OBJECT_ID",
		Short: "Show a container and the device hosting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				c, parent, err := s.Containers.Container(ctx, args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, dto.FromDetail(c, parent), func() string {
					return containerDetail(c, parent)
				})
			})
		},
	}
}

func newContainersActionCmd(opts *rootOptions, action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " OBJECT_ID",
		Short: strings.ToUpper(action[:1]) + action[1:] + " a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				c := domain.Container{ID: args[0]}
				if action == "stop" {
					return s.Containers.Stop(ctx, c)
				}
				return s.Containers.Remove(ctx, c)
			})
		},
	}
}

func newCapabilitiesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show which container actions are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				caps := s.Containers.Capabilities()
				return render(cmd.OutOrStdout(), opts.output, dto.FromCapabilities(caps), func() string {
					return components.KeyValue([][2]string{
						{"stop", yesNo(caps.Stop)},
						{"remove", yesNo(caps.Remove)},
					})
				})
			})
		},
	}
}

func containersTable(containers []domain.Container) string {
	if len(containers) == 0 {
		return emptyNotice("containers")
	}

	tbl := components.NewTable([]components.Column{
		{Title: "ID"},
		{Title: "NAME", Width: 28},
		{Title: "IMAGE", Width: 32},
		{Title: "STATUS"},
		{Title: "PROJECT"},
		{Title: "PORTS", Width: 24},
	})
	for _, c := range containers {
		tbl.AddRow(c.ID, c.Name, c.Image, components.ContainerStatus(c.Status), c.Project, c.Ports)
	}
	return tbl.Render()
}

func containerDetail(c domain.Container, parent domain.ContainerParent) string {
	pairs := [][2]string{
		{"id", c.ID},
		{"name", c.Name},
		{"container id", c.ContainerID},
		{"image", c.Image},
		{"status", components.ContainerStatus(c.Status)},
		{"state", c.State},
		{"project", c.Project},
		{"ports", c.Ports},
		{"networks", c.Networks},
		{"command", c.Command},
		{"filesystem", c.Filesystem},
		{"running for", c.RunningFor},
		{"last updated", c.LastUpdated},
	}
	if parent.ID != "" {
		pairs = append(pairs, [2]string{"device", parent.Name + " (" + parent.ID + ")"})
	}
	return components.KeyValue(pairs)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
