// Package container implements the container inventory use case.
package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/boundaries/out"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

// Config holds configuration needed by the container service.
type Config struct {
	Predicate domain.ServicePredicate
	PageSize  int
}

// Service implements the ContainerService interface.
type Service struct {
	inventory out.Inventory
	projector Projector
	config    Config
}

var _ in.ContainerService = (*Service)(nil)

// NewService creates a new container service.
func NewService(inventory out.Inventory, config Config) *Service {
	return &Service{
		inventory: inventory,
		projector: Projector{RequireDescriptor: config.Predicate.RequireDescriptor},
		config:    config,
	}
}

// Containers returns every container published under a device.
// Objects that cannot be shaped into a container are left out.
func (s *Service) Containers(ctx context.Context, deviceID string) ([]domain.Container, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "usecase",
		logging.FieldUseCase:  "Containers",
		logging.FieldDeviceID: deviceID,
	})
	log := logging.FromCtx(ctx)

	query := domain.ChildQuery{
		Predicate:      s.config.Predicate,
		PageSize:       s.config.PageSize,
		WithTotalPages: true,
	}.Normalize()

	objects, err := s.inventory.FetchChildren(ctx, deviceID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers of device %s: %w", deviceID, err)
	}

	containers := make([]domain.Container, 0, len(objects))
	for _, raw := range objects {
		c, ok := s.projector.ToContainer(raw)
		if !ok {
			log.Debug().
				Err(domain.ErrMalformedResult).
				Str(logging.FieldEntityID, raw.Get("id").String()).
				Msg("skipping inventory object")
			continue
		}
		containers = append(containers, c)
	}

	log.Debug().Int(logging.FieldCount, len(containers)).Msg("containers resolved")
	return containers, nil
}

// ContainerGroups returns the containers of a device grouped by project.
func (s *Service) ContainerGroups(ctx context.Context, deviceID string) ([]domain.ContainerGroup, error) {
	containers, err := s.Containers(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return GroupByProject(containers), nil
}

// Container returns a single container together with its hosting device.
func (s *Service) Container(ctx context.Context, objectID string) (domain.Container, domain.ContainerParent, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "usecase",
		logging.FieldUseCase:  "Container",
		logging.FieldEntityID: objectID,
	})

	raw, err := s.inventory.FetchWithParents(ctx, objectID)
	if err != nil {
		return domain.Container{}, domain.ContainerParent{}, fmt.Errorf("failed to get container %s: %w", objectID, err)
	}

	c, parent, ok := s.projector.ToContainerWithParent(raw)
	if !ok {
		return domain.Container{}, domain.ContainerParent{}, fmt.Errorf("object %s: %w", objectID, domain.ErrMalformedResult)
	}

	logging.FromCtx(ctx).Debug().Str("parent_id", parent.ID).Msg("container resolved")
	return c, parent, nil
}

// Search returns the containers of a device matching the options.
func (s *Service) Search(ctx context.Context, deviceID string, opts in.SearchOptions) ([]domain.Container, error) {
	containers, err := s.Containers(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return FilterContainers(containers, opts.IncludeGroups, opts.Query), nil
}

// SearchGroups returns the container groups of a device matching the query.
func (s *Service) SearchGroups(ctx context.Context, deviceID string, query string) ([]domain.ContainerGroup, error) {
	groups, err := s.ContainerGroups(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return FilterGroups(groups, query), nil
}

// Capabilities reports which container actions are available.
func (s *Service) Capabilities() domain.Capabilities {
	return domain.Capabilities{}
}

// Stop is not supported.
func (s *Service) Stop(ctx context.Context, container domain.Container) error {
	return s.unsupported(ctx, "Stop", container)
}

// Remove is not supported.
func (s *Service) Remove(ctx context.Context, container domain.Container) error {
	return s.unsupported(ctx, "Remove", container)
}

func (s *Service) unsupported(ctx context.Context, action string, container domain.Container) error {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "usecase",
		logging.FieldUseCase:  action,
		logging.FieldEntityID: container.ID,
		"container_id":        container.ContainerID,
	})
	logging.FromCtx(ctx).Warn().Msg("container action not supported")
	return fmt.Errorf("%s container %s: %w", strings.ToLower(action), container.ID, domain.ErrUnsupported)
}
