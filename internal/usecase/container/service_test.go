package container

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/boundaries/out/mocks"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

func testContext() context.Context {
	return logging.WithCtx(context.Background(), zerolog.Nop())
}

func strictConfig() Config {
	return Config{Predicate: domain.StrictPredicate(), PageSize: domain.MaxPageSize}
}

func expectedListQuery() domain.ChildQuery {
	return domain.ChildQuery{
		Predicate:      domain.StrictPredicate(),
		PageSize:       100,
		WithTotalPages: true,
	}
}

func TestService_Containers(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchChildren", mock.Anything, "d1", expectedListQuery()).Return(mocks.Objects(
		`{"id":"1","name":"nginx","status":"up","container":{"containerId":"c1","image":"nginx","projectName":"web"}}`,
		`{"id":"2","name":"broken","status":"up"}`,
		`{"name":"no id","container":{"containerId":"c3"}}`,
		`{"id":"4","name":"mosquitto","status":"down","container":{"containerId":"c4","image":"eclipse-mosquitto"}}`,
	), nil)

	containers, err := svc.Containers(testContext(), "d1")

	require.NoError(t, err)
	require.Len(t, containers, 2)
	assert.Equal(t, "1", containers[0].ID)
	assert.Equal(t, "web", containers[0].Project)
	assert.Equal(t, "4", containers[1].ID)
	inventory.AssertExpectations(t)
}

func TestService_Containers_LegacyPredicateAcceptsFlatObjects(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, Config{Predicate: domain.LegacyPredicate(), PageSize: 250})

	query := domain.ChildQuery{Predicate: domain.LegacyPredicate(), PageSize: 100, WithTotalPages: true}
	inventory.On("FetchChildren", mock.Anything, "d1", query).Return(mocks.Objects(
		`{"id":"2","name":"flat","status":"up","containerId":"c2","image":"redis"}`,
	), nil)

	containers, err := svc.Containers(testContext(), "d1")

	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, "c2", containers[0].ContainerID)
	inventory.AssertExpectations(t)
}

func TestService_Containers_Error(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchChildren", mock.Anything, "d1", expectedListQuery()).
		Return(nil, fmt.Errorf("dial tcp: connection refused: %w", domain.ErrUnavailable))

	containers, err := svc.Containers(testContext(), "d1")

	assert.Nil(t, containers)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestService_ContainerGroups(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchChildren", mock.Anything, "d1", expectedListQuery()).Return(mocks.Objects(
		`{"id":"1","status":"running","container":{"containerId":"1","projectName":"a"}}`,
		`{"id":"2","status":"uninstalled","container":{"containerId":"2","projectName":"a"}}`,
		`{"id":"3","status":"running","container":{"containerId":"3","projectName":"b"}}`,
		`{"id":"4","status":"running","container":{"containerId":"4"}}`,
	), nil)

	groups, err := svc.ContainerGroups(testContext(), "d1")

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Project)
	assert.Len(t, groups[0].Containers, 2)
	assert.Equal(t, "b", groups[1].Project)
	assert.Len(t, groups[1].Containers, 1)
}

func TestService_Container(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchWithParents", mock.Anything, "1001").Return(gjson.Parse(`{
		"id": "1001",
		"name": "nginx",
		"status": "up",
		"container": {"containerId": "c1", "image": "nginx"},
		"additionParents": {"references": [
			{"managedObject": {"id": "10", "name": "gateway"}},
			{"managedObject": {"id": "20", "name": "edge-01"}}
		]}
	}`), nil)

	c, parent, err := svc.Container(testContext(), "1001")

	require.NoError(t, err)
	assert.Equal(t, "c1", c.ContainerID)
	assert.Equal(t, domain.ContainerParent{Name: "edge-01", ID: "20"}, parent)
}

func TestService_Container_NotFound(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchWithParents", mock.Anything, "missing").
		Return(gjson.Result{}, fmt.Errorf("object missing: %w", domain.ErrNotFound))

	_, _, err := svc.Container(testContext(), "missing")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestService_Container_Malformed(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchWithParents", mock.Anything, "1").
		Return(gjson.Parse(`{"id":"1","name":"no descriptor"}`), nil)

	_, _, err := svc.Container(testContext(), "1")

	assert.True(t, errors.Is(err, domain.ErrMalformedResult))
}

func TestService_Search(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchChildren", mock.Anything, "d1", expectedListQuery()).Return(mocks.Objects(
		`{"id":"1","status":"up","container":{"containerId":"c1","image":"nginx","projectName":"web"}}`,
		`{"id":"2","status":"up","container":{"containerId":"c2","image":"nginx:alpine"}}`,
		`{"id":"3","status":"up","container":{"containerId":"c3","image":"redis"}}`,
	), nil)

	standalone, err := svc.Search(testContext(), "d1", in.SearchOptions{Query: "NGINX"})
	require.NoError(t, err)
	require.Len(t, standalone, 1)
	assert.Equal(t, "2", standalone[0].ID)

	all, err := svc.Search(testContext(), "d1", in.SearchOptions{Query: "nginx", IncludeGroups: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_SearchGroups(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchChildren", mock.Anything, "d1", expectedListQuery()).Return(mocks.Objects(
		`{"id":"1","status":"up","container":{"containerId":"c1","image":"grafana","projectName":"monitoring"}}`,
		`{"id":"2","status":"up","container":{"containerId":"c2","image":"nginx","projectName":"web"}}`,
	), nil)

	groups, err := svc.SearchGroups(testContext(), "d1", "graf")

	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "monitoring", groups[0].Project)
}

func TestService_SearchGroups_Error(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())

	inventory.On("FetchChildren", mock.Anything, "d1", expectedListQuery()).Return(nil, domain.ErrUnavailable)

	groups, err := svc.SearchGroups(testContext(), "d1", "")

	assert.Nil(t, groups)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestService_UnsupportedActions(t *testing.T) {
	inventory := new(mocks.MockInventory)
	svc := NewService(inventory, strictConfig())
	c := domain.Container{ID: "1", ContainerID: "c1"}

	assert.Equal(t, domain.Capabilities{}, svc.Capabilities())

	err := svc.Stop(testContext(), c)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
	assert.Contains(t, err.Error(), "stop container 1")

	err = svc.Remove(testContext(), c)
	assert.ErrorIs(t, err, domain.ErrUnsupported)

	inventory.AssertNotCalled(t, "FetchChildren", mock.Anything, mock.Anything, mock.Anything)
	inventory.AssertNotCalled(t, "FetchWithParents", mock.Anything, mock.Anything)
}
