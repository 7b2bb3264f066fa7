package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/domain"
)

// MockContainerService is a mock implementation of in.ContainerService
type MockContainerService struct {
	mock.Mock
}

func (m *MockContainerService) Containers(ctx context.Context, deviceID string) ([]domain.Container, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockContainerService) ContainerGroups(ctx context.Context, deviceID string) ([]domain.ContainerGroup, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContainerGroup), args.Error(1)
}

func (m *MockContainerService) Container(ctx context.Context, objectID string) (domain.Container, domain.ContainerParent, error) {
	args := m.Called(ctx, objectID)
	return args.Get(0).(domain.Container), args.Get(1).(domain.ContainerParent), args.Error(2)
}

func (m *MockContainerService) Search(ctx context.Context, deviceID string, opts in.SearchOptions) ([]domain.Container, error) {
	args := m.Called(ctx, deviceID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockContainerService) SearchGroups(ctx context.Context, deviceID string, query string) ([]domain.ContainerGroup, error) {
	args := m.Called(ctx, deviceID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContainerGroup), args.Error(1)
}

func (m *MockContainerService) Capabilities() domain.Capabilities {
	args := m.Called()
	return args.Get(0).(domain.Capabilities)
}

func (m *MockContainerService) Stop(ctx context.Context, container domain.Container) error {
	args := m.Called(ctx, container)
	return args.Error(0)
}

func (m *MockContainerService) Remove(ctx context.Context, container domain.Container) error {
	args := m.Called(ctx, container)
	return args.Error(0)
}
