package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/containerlens/containerlens/internal/adapters/dto"
	"github.com/containerlens/containerlens/internal/boundaries/in"
	"github.com/containerlens/containerlens/internal/boundaries/in/mocks"
	"github.com/containerlens/containerlens/internal/domain"
)

type cliFixture struct {
	containers *mocks.MockContainerService
	access     *mocks.MockAccessService
	configPath string
	released   bool
	connectErr error
}

func newCLIFixture() *cliFixture {
	return &cliFixture{
		containers: new(mocks.MockContainerService),
		access:     new(mocks.MockAccessService),
	}
}

func (f *cliFixture) connect(_ context.Context, configPath string, _ io.Writer) (*Session, error) {
	f.configPath = configPath
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return &Session{
		Containers: f.containers,
		Access:     f.access,
		Log:        zerolog.Nop(),
		release:    func() { f.released = true },
	}, nil
}

func (f *cliFixture) execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(f.connect)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func stripANSI(s string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`).ReplaceAllString(s, "")
}

func TestContainersList_JSON(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Search", mock.Anything, "d1", in.SearchOptions{}).Return([]domain.Container{
		{ID: "1", Name: "mosquitto", ContainerID: "c1", Image: "eclipse-mosquitto", Status: "up"},
	}, nil)

	stdout, _, err := f.execute("containers", "list", "d1", "-o", "json", "--config", "lens.yaml")

	require.NoError(t, err)
	var got []dto.Container
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "mosquitto", got[0].Name)
	assert.Equal(t, "lens.yaml", f.configPath)
	assert.True(t, f.released)
	f.containers.AssertExpectations(t)
}

func TestContainersList_TableWithGroupsAndQuery(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Search", mock.Anything, "d1", in.SearchOptions{Query: "nginx", IncludeGroups: true}).
		Return([]domain.Container{
			{ID: "1", Name: "web@nginx", ContainerID: "c1", Image: "nginx", Status: "up", Project: "web"},
		}, nil)

	stdout, _, err := f.execute("containers", "list", "d1", "--groups", "-q", "nginx")

	require.NoError(t, err)
	out := stripANSI(stdout)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "web@nginx")
	assert.Contains(t, out, "web")
	f.containers.AssertExpectations(t)
}

func TestContainersList_Empty(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Search", mock.Anything, "d1", in.SearchOptions{}).Return([]domain.Container{}, nil)

	stdout, _, err := f.execute("containers", "list", "d1")

	require.NoError(t, err)
	assert.Contains(t, stripANSI(stdout), "No containers found")
}

func TestContainersList_Error(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Search", mock.Anything, "d1", in.SearchOptions{}).
		Return(nil, fmt.Errorf("list containers of device d1: %w", domain.ErrUnavailable))

	_, _, err := f.execute("containers", "list", "d1")

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.True(t, f.released)
}

func TestContainersList_RequiresDevice(t *testing.T) {
	f := newCLIFixture()

	_, _, err := f.execute("containers", "list")

	assert.Error(t, err)
	f.containers.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestContainersGet_YAML(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Container", mock.Anything, "1001").Return(
		domain.Container{ID: "1001", Name: "nginx", ContainerID: "c1", Image: "nginx"},
		domain.ContainerParent{ID: "edge-01", Name: "Edge"},
		nil,
	)

	stdout, _, err := f.execute("containers", "get", "1001", "-o", "yaml")

	require.NoError(t, err)
	assert.Contains(t, stdout, "container:")
	assert.Contains(t, stdout, "image: nginx")
	assert.Contains(t, stdout, "parent:")
	assert.Contains(t, stdout, "id: edge-01")
}

func TestContainersGet_Table(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Container", mock.Anything, "1001").Return(
		domain.Container{ID: "1001", Name: "nginx", ContainerID: "c1", Status: "up"},
		domain.ContainerParent{ID: "edge-01", Name: "Edge"},
		nil,
	)

	stdout, _, err := f.execute("containers", "get", "1001")

	require.NoError(t, err)
	out := stripANSI(stdout)
	assert.Contains(t, out, "container id:")
	assert.Contains(t, out, "Edge (edge-01)")
}

func TestContainersStop_Unsupported(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Stop", mock.Anything, domain.Container{ID: "1"}).
		Return(fmt.Errorf("stop container 1: %w", domain.ErrUnsupported))

	_, _, err := f.execute("containers", "stop", "1")

	assert.ErrorIs(t, err, domain.ErrUnsupported)
	f.containers.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestContainersRemove_Unsupported(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Remove", mock.Anything, domain.Container{ID: "1"}).
		Return(fmt.Errorf("remove container 1: %w", domain.ErrUnsupported))

	_, _, err := f.execute("containers", "remove", "1")

	assert.ErrorIs(t, err, domain.ErrUnsupported)
}

func TestCapabilities_JSON(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("Capabilities").Return(domain.Capabilities{})

	stdout, _, err := f.execute("containers", "capabilities", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"stop":false,"remove":false}`, stdout)
}

func TestGroupsList_Table(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("SearchGroups", mock.Anything, "d1", "graf").Return([]domain.ContainerGroup{
		{Project: "monitoring", Containers: []domain.Container{{Image: "grafana"}, {Image: "prom"}}},
	}, nil)

	stdout, _, err := f.execute("groups", "list", "d1", "--query", "graf")

	require.NoError(t, err)
	out := stripANSI(stdout)
	assert.Contains(t, out, "monitoring")
	assert.Contains(t, out, "grafana, prom")
}

func TestGroupsList_JSONNeverNull(t *testing.T) {
	f := newCLIFixture()
	f.containers.On("SearchGroups", mock.Anything, "d1", "").Return(nil, nil)

	stdout, _, err := f.execute("groups", "list", "d1", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
}

func TestAccessList(t *testing.T) {
	f := newCLIFixture()
	f.access.On("CanViewContainerList", mock.Anything, "d1").Return(true, nil)

	stdout, stderr, err := f.execute("access", "list", "d1", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"allowed":true}`, stdout)
	assert.Empty(t, stderr)
}

func TestAccessList_ErrorDenies(t *testing.T) {
	f := newCLIFixture()
	f.access.On("CanViewContainerList", mock.Anything, "d1").Return(false, domain.ErrUnavailable)

	stdout, stderr, err := f.execute("access", "list", "d1")

	require.NoError(t, err)
	assert.Contains(t, stripANSI(stdout), "denied")
	assert.Contains(t, stderr, "Warning")
}

func TestAccessTab_ResolvesLoadedChain(t *testing.T) {
	f := newCLIFixture()
	view := domain.ViewContext{ID: "7"}
	parent := domain.ViewContext{ID: "9", ServiceType: "container"}
	f.access.On("LoadViewChain", mock.Anything, "7").Return([]domain.ViewContext{view, parent}, nil)
	f.access.On("ResolveViewContext", []domain.ViewContext{view, parent}).Return(parent)
	f.access.On("CanViewContainerTab", "container").Return(true)

	stdout, _, err := f.execute("access", "tab", "7")

	require.NoError(t, err)
	assert.Contains(t, stripANSI(stdout), "allowed")
	f.access.AssertExpectations(t)
}

func TestAccessTab_ExplicitServiceType(t *testing.T) {
	f := newCLIFixture()
	view := domain.ViewContext{ID: "7", ServiceType: "systemd"}
	f.access.On("ResolveViewContext", []domain.ViewContext{view}).Return(view)
	f.access.On("CanViewContainerTab", "systemd").Return(false)

	stdout, _, err := f.execute("access", "tab", "7", "--service-type", "systemd", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"allowed":false}`, stdout)
	f.access.AssertNotCalled(t, "LoadViewChain", mock.Anything, mock.Anything)
}

func TestAccessTab_LoadErrorDenies(t *testing.T) {
	f := newCLIFixture()
	f.access.On("LoadViewChain", mock.Anything, "7").Return(nil, domain.ErrNotFound)

	stdout, _, err := f.execute("access", "tab", "7", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"allowed":false}`, stdout)
}

func TestUnknownOutputFormat(t *testing.T) {
	f := newCLIFixture()

	_, _, err := f.execute("containers", "list", "d1", "-o", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Empty(t, f.configPath)
}

func TestConnectError(t *testing.T) {
	f := newCLIFixture()
	f.connectErr = fmt.Errorf("inventory.source: %w", domain.ErrInvalidConfig)

	_, _, err := f.execute("access", "list", "d1")

	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-05-01")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })

	stdout, _, err := newCLIFixture().execute("version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "containerlens 1.2.3")
	assert.Contains(t, stdout, "Commit: abc123")
}
