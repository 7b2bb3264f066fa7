// Package cli implements the CLI adapter for containerlens.
// Commands delegate to the use cases wired by the app layer.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/containerlens/containerlens/internal/app"
	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/logging"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Session gives a command access to the use cases for the duration of one run.
type Session struct {
	Containers in.ContainerService
	Access     in.AccessService
	Log        zerolog.Logger

	release func()
}

// Close releases the resources held by the session.
func (s *Session) Close() {
	if s.release != nil {
		s.release()
	}
}

// Connector opens a session from a configuration file path.
type Connector func(ctx context.Context, configPath string, stderr io.Writer) (*Session, error)

type rootOptions struct {
	configPath string
	output     string
	connect    Connector
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(connect)
}

func newRootCmd(connector Connector) *cobra.Command {
	opts := &rootOptions{connect: connector}

	rootCmd := &cobra.Command{
		Use:   "containerlens",
		Short: "containerlens - container inventory of edge devices",
		Long: `containerlens reads the containers and container groups that edge devices
publish to their inventory, and answers whether the container views apply.

It runs as an HTTP API (serve) or answers one-off queries from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(opts.output)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", FormatTable, "Output format: table, json or yaml")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newContainersCmd(opts))
	rootCmd.AddCommand(newGroupsCmd(opts))
	rootCmd.AddCommand(newAccessCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("containerlens %s\n", Version)
			cmd.Printf("Commit: %s\n", Commit)
			cmd.Printf("Build Date: %s\n", BuildDate)
		},
	}
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	Version = version
	Commit = commit
	BuildDate = date
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func connect(ctx context.Context, configPath string, stderr io.Writer) (*Session, error) {
	rt, err := app.Bootstrap(ctx, configPath, Version, stderr)
	if err != nil {
		return nil, err
	}
	return &Session{
		Containers: rt.Containers,
		Access:     rt.Access,
		Log:        rt.Log,
		release:    func() { rt.Close(context.Background()) },
	}, nil
}

// run opens a session, hands fn a logger-carrying context and closes the session.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, s *Session) error) error {
	s, err := o.connect(cmd.Context(), o.configPath, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer s.Close()

	ctx := logging.CtxWithFields(logging.WithCtx(cmd.Context(), s.Log), map[string]any{
		logging.FieldLayer:  "cli",
		logging.FieldAction: cmd.CommandPath(),
	})
	return fn(ctx, s)
}
