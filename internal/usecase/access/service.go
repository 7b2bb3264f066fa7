// Package access implements the visibility checks for container views.
package access

import (
	"context"
	"fmt"

	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/boundaries/out"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

// Service implements the AccessService interface.
type Service struct {
	inventory out.Inventory
	predicate domain.ServicePredicate
}

var _ in.AccessService = (*Service)(nil)

// NewService creates a new access service using the given child predicate.
func NewService(inventory out.Inventory, predicate domain.ServicePredicate) *Service {
	return &Service{
		inventory: inventory,
		predicate: predicate,
	}
}

// CanViewContainerTab reports whether the service type belongs to a container or container group.
func (s *Service) CanViewContainerTab(serviceType string) bool {
	return serviceType == domain.ServiceTypeContainer || serviceType == domain.ServiceTypeContainerGroup
}

// ResolveViewContext returns the first context of the chain carrying a service type.
// The chain is ordered from the nearest context outwards.
func (s *Service) ResolveViewContext(chain ...domain.ViewContext) domain.ViewContext {
	for _, view := range chain {
		if view.ServiceType != "" {
			return view
		}
	}
	return domain.ViewContext{}
}

// LoadViewChain fetches an object and returns its view context followed by the
// context of its parent, if any. The parent is the last addition parent reference.
// When neither the object nor the reference carries a service type, the parent
// is fetched to read its own.
func (s *Service) LoadViewChain(ctx context.Context, objectID string) ([]domain.ViewContext, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "usecase",
		logging.FieldUseCase:  "LoadViewChain",
		logging.FieldEntityID: objectID,
	})

	raw, err := s.inventory.FetchWithParents(ctx, objectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load view context of %s: %w", objectID, err)
	}

	id := raw.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("object %s: %w", objectID, domain.ErrMalformedResult)
	}

	own := domain.ViewContext{ID: id, ServiceType: raw.Get("serviceType").String()}
	chain := []domain.ViewContext{own}

	refs := raw.Get("additionParents.references").Array()
	if len(refs) == 0 {
		return chain, nil
	}
	mo := refs[len(refs)-1].Get("managedObject")
	parent := domain.ViewContext{ID: mo.Get("id").String(), ServiceType: mo.Get("serviceType").String()}
	if parent.ID == "" {
		return chain, nil
	}

	if own.ServiceType == "" && parent.ServiceType == "" {
		parentRaw, err := s.inventory.FetchWithParents(ctx, parent.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent %s of %s: %w", parent.ID, objectID, err)
		}
		parent.ServiceType = parentRaw.Get("serviceType").String()
		logging.FromCtx(ctx).Debug().Str("parent_id", parent.ID).Msg("parent view context loaded")
	}

	return append(chain, parent), nil
}

// CanViewContainerList reports whether the device publishes at least one matching child.
// Inventory errors are propagated together with false.
func (s *Service) CanViewContainerList(ctx context.Context, deviceID string) (bool, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "usecase",
		logging.FieldUseCase:  "CanViewContainerList",
		logging.FieldDeviceID: deviceID,
	})
	log := logging.FromCtx(ctx)

	objects, err := s.inventory.FetchChildren(ctx, deviceID, domain.ChildQuery{
		Predicate: s.predicate,
		PageSize:  1,
	})
	if err != nil {
		return false, fmt.Errorf("failed to verify containers of device %s: %w", deviceID, err)
	}

	allowed := len(objects) > 0
	log.Debug().Bool("allowed", allowed).Msg("verified container list access")
	return allowed, nil
}
