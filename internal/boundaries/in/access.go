package in

import (
	"context"

	"github.com/containerlens/containerlens/internal/domain"
)

// AccessService decides whether container views may be shown.
type AccessService interface {
	// CanViewContainerTab reports whether the container detail tab applies to the
	// service type of an already resolved view context.
	CanViewContainerTab(serviceType string) bool

	// ResolveViewContext returns the nearest context in the chain carrying a service type.
	ResolveViewContext(chain ...domain.ViewContext) domain.ViewContext

	// LoadViewChain reads the view context of an inventory object followed by
	// the context of its parent device, nearest first.
	LoadViewChain(ctx context.Context, objectID string) ([]domain.ViewContext, error)

	// CanViewContainerList reports whether a device publishes at least one container.
	// Any error means the view is not visible.
	CanViewContainerList(ctx context.Context, deviceID string) (bool, error)
}
