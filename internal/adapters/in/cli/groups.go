package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/containerlens/containerlens/internal/adapters/dto"
	"github.com/containerlens/containerlens/internal/adapters/in/cli/ui/components"
	"github.com/containerlens/containerlens/internal/domain"
)

func newGroupsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group", "g"},
		Short:   "Inspect the container groups of a device",
	}
	cmd.AddCommand(newGroupsListCmd(opts))
	return cmd
}

func newGroupsListCmd(opts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "list DEVICE_ID",
		Aliases: []string{"ls"},
		Short:   "List the compose projects of a device with their containers",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *Session) error {
				groups, err := s.Containers.SearchGroups(ctx, args[0], query)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, dto.FromGroups(groups), func() string {
					return groupsTable(groups)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive text matched against the project and container images")

	return cmd
}

func groupsTable(groups []domain.ContainerGroup) string {
	if len(groups) == 0 {
		return emptyNotice("container groups")
	}

	tbl := components.NewTable([]components.Column{
		{Title: "PROJECT"},
		{Title: "CONTAINERS"},
		{Title: "IMAGES", Width: 60},
	})
	for _, g := range groups {
		images := make([]string, 0, len(g.Containers))
		for _, c := range g.Containers {
			images = append(images, c.Image)
		}
		tbl.AddRow(g.Project, strconv.Itoa(len(g.Containers)), strings.Join(images, ", "))
	}
	return tbl.Render()
}
