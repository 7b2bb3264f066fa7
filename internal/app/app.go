// Package app provides the application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/containerlens/containerlens/internal/adapters/out/cumulocity"
	"github.com/containerlens/containerlens/internal/adapters/out/docker"
	"github.com/containerlens/containerlens/internal/adapters/out/telemetry"
	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/boundaries/out"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
	"github.com/containerlens/containerlens/internal/usecase/access"
	"github.com/containerlens/containerlens/internal/usecase/container"
)

// ServiceName identifies the application in telemetry.
const ServiceName = "containerlens"

// Runtime holds the wired application: configuration, root logger and use cases.
type Runtime struct {
	Config     Config
	Log        zerolog.Logger
	Containers in.ContainerService
	Access     in.AccessService

	logCloser io.Closer
	shutdown  func(context.Context)
}

// Bootstrap loads the configuration and wires every component.
// Callers must Close the runtime.
func Bootstrap(ctx context.Context, configPath, version string, stderr io.Writer) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, version, stderr)
}

// New wires the application from an already loaded configuration.
func New(ctx context.Context, cfg Config, version string, stderr io.Writer) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, logCloser, err := logging.Setup(cfg.Logging, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	rt := &Runtime{Config: cfg, Log: log, logCloser: logCloser, shutdown: func(context.Context) {}}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, ServiceName, version)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	rt.shutdown = shutdown

	inventory, err := createInventory(cfg)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	inventory = telemetry.NewInstrumentedInventory(inventory, metrics, cfg.Inventory.Source)

	predicate := cfg.Predicate()
	rt.Containers = container.NewService(inventory, container.Config{
		Predicate: predicate,
		PageSize:  cfg.Inventory.PageSize,
	})
	rt.Access = access.NewService(inventory, predicate)

	log.Debug().
		Str(logging.FieldLayer, "app").
		Str("source", cfg.Inventory.Source).
		Str("predicate", predicate.Expression()).
		Msg("application wired")

	return rt, nil
}

// Context attaches the root logger to ctx.
func (r *Runtime) Context(ctx context.Context) context.Context {
	return logging.WithCtx(ctx, r.Log)
}

// Close flushes telemetry and releases the log file.
func (r *Runtime) Close(ctx context.Context) {
	r.shutdown(ctx)
	_ = r.logCloser.Close()
}

func createInventory(cfg Config) (out.Inventory, error) {
	switch cfg.Inventory.Source {
	case SourceCumulocity:
		inv, err := cumulocity.NewInventory(cfg.Inventory.Cumulocity)
		if err != nil {
			return nil, fmt.Errorf("failed to create Cumulocity inventory: %w", err)
		}
		return inv, nil
	case SourceDocker:
		inv, err := docker.NewInventory(cfg.Inventory.Docker)
		if err != nil {
			return nil, fmt.Errorf("failed to create Docker inventory: %w", err)
		}
		return inv, nil
	default:
		return nil, fmt.Errorf("unknown inventory source %q: %w", cfg.Inventory.Source, domain.ErrInvalidConfig)
	}
}
