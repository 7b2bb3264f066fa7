package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tidwall/gjson"

	"github.com/containerlens/containerlens/internal/domain"
)

// MockInventory is a mock implementation of out.Inventory
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) FetchChildren(ctx context.Context, deviceID string, query domain.ChildQuery) ([]gjson.Result, error) {
	args := m.Called(ctx, deviceID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gjson.Result), args.Error(1)
}

func (m *MockInventory) FetchWithParents(ctx context.Context, objectID string) (gjson.Result, error) {
	args := m.Called(ctx, objectID)
	return args.Get(0).(gjson.Result), args.Error(1)
}

// Objects parses JSON documents into raw inventory objects.
func Objects(docs ...string) []gjson.Result {
	result := make([]gjson.Result, 0, len(docs))
	for _, doc := range docs {
		result = append(result, gjson.Parse(doc))
	}
	return result
}
