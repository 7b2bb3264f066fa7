// Package in defines input ports (interfaces) for use cases.
// These interfaces define the contract between driving adapters (HTTP, CLI)
// and the business logic (use cases).
package in

import (
	"context"

	"github.com/containerlens/containerlens/internal/domain"
)

// SearchOptions narrows a container listing.
type SearchOptions struct {
	Query         string
	IncludeGroups bool
}

// ContainerService defines the contract for reading container inventory.
type ContainerService interface {
	// Containers returns every container published under a device.
	Containers(ctx context.Context, deviceID string) ([]domain.Container, error)

	// ContainerGroups returns the containers of a device grouped by project.
	ContainerGroups(ctx context.Context, deviceID string) ([]domain.ContainerGroup, error)

	// Container returns a single container together with its hosting device.
	Container(ctx context.Context, objectID string) (domain.Container, domain.ContainerParent, error)

	// Search returns the containers of a device matching the options.
	Search(ctx context.Context, deviceID string, opts SearchOptions) ([]domain.Container, error)

	// SearchGroups returns the container groups of a device matching the query.
	SearchGroups(ctx context.Context, deviceID string, query string) ([]domain.ContainerGroup, error)

	// Capabilities reports which container actions are available.
	Capabilities() domain.Capabilities

	// Stop stops a container. Not supported; always returns domain.ErrUnsupported.
	Stop(ctx context.Context, container domain.Container) error

	// Remove removes a container. Not supported; always returns domain.ErrUnsupported.
	Remove(ctx context.Context, container domain.Container) error
}
