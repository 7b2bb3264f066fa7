package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/containerlens/containerlens/internal/domain"
)

// MockAccessService is a mock implementation of in.AccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) CanViewContainerTab(serviceType string) bool {
	args := m.Called(serviceType)
	return args.Bool(0)
}

func (m *MockAccessService) ResolveViewContext(chain ...domain.ViewContext) domain.ViewContext {
	args := m.Called(chain)
	return args.Get(0).(domain.ViewContext)
}

func (m *MockAccessService) LoadViewChain(ctx context.Context, objectID string) ([]domain.ViewContext, error) {
	args := m.Called(ctx, objectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ViewContext), args.Error(1)
}

func (m *MockAccessService) CanViewContainerList(ctx context.Context, deviceID string) (bool, error) {
	args := m.Called(ctx, deviceID)
	return args.Bool(0), args.Error(1)
}
