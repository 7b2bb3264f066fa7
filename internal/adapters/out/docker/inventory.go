// Package docker serves the container inventory from the local container engine.
package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/docker/go-units"
	"github.com/tidwall/gjson"

	"github.com/containerlens/containerlens/internal/boundaries/out"
	"github.com/containerlens/containerlens/internal/domain"
	"github.com/containerlens/containerlens/internal/logging"
)

// Compose labels set by docker compose on every service container.
const (
	LabelComposeProject = "com.docker.compose.project"
	LabelComposeService = "com.docker.compose.service"
)

// Config describes the local device the engine containers are published under.
type Config struct {
	Host       string `mapstructure:"host"` // engine address, empty means DOCKER_HOST or the default socket
	DeviceID   string `mapstructure:"device_id"`
	DeviceName string `mapstructure:"device_name"`
}

// Inventory implements out.Inventory on top of the Docker engine API.
type Inventory struct {
	client *client.Client
	device domain.ContainerParent
	now    func() time.Time
}

var _ out.Inventory = (*Inventory)(nil)

// NewInventory connects to the local engine.
func NewInventory(cfg Config) (*Inventory, error) {
	if cfg.DeviceID == "" {
		return nil, fmt.Errorf("docker inventory requires a device id: %w", domain.ErrInvalidConfig)
	}

	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if cfg.Host != "" {
		opts = append(opts, client.WithHost(cfg.Host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return NewInventoryWithClient(cli, cfg), nil
}

// NewInventoryWithClient creates an inventory with a custom client (for testing).
func NewInventoryWithClient(cli *client.Client, cfg Config) *Inventory {
	name := cfg.DeviceName
	if name == "" {
		name = cfg.DeviceID
	}
	return &Inventory{
		client: cli,
		device: domain.ContainerParent{Name: name, ID: cfg.DeviceID},
		now:    time.Now,
	}
}

// FetchChildren lists the engine containers matching the query predicate.
// Only the configured device has children.
func (i *Inventory) FetchChildren(ctx context.Context, deviceID string, query domain.ChildQuery) ([]gjson.Result, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "adapter",
		logging.FieldAdapter:  "docker",
		logging.FieldAction:   "FetchChildren",
		logging.FieldDeviceID: deviceID,
	})
	log := logging.FromCtx(ctx)

	if deviceID != i.device.ID {
		return nil, fmt.Errorf("device %s: %w", deviceID, domain.ErrNotFound)
	}

	query = query.Normalize()
	items, err := i.client.ContainerList(ctx, container.ListOptions{All: true, Size: true})
	if err != nil {
		return nil, classify(err, "list containers")
	}

	now := i.now()
	results := make([]gjson.Result, 0, len(items))
	for _, item := range items {
		obj := toObject(item, now)
		if !query.Predicate.Matches(obj.ServiceType, true) {
			continue
		}
		raw, err := obj.raw()
		if err != nil {
			return nil, err
		}
		results = append(results, raw)
		if len(results) == query.PageSize {
			break
		}
	}

	log.Debug().Int(logging.FieldCount, len(results)).Msg("engine containers listed")
	return results, nil
}

// FetchWithParents looks a container up by engine id. The configured device is
// reported as its only parent.
func (i *Inventory) FetchWithParents(ctx context.Context, objectID string) (gjson.Result, error) {
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:    "adapter",
		logging.FieldAdapter:  "docker",
		logging.FieldAction:   "FetchWithParents",
		logging.FieldEntityID: objectID,
	})

	if objectID == "" {
		return gjson.Result{}, fmt.Errorf("empty container id: %w", domain.ErrNotFound)
	}

	items, err := i.client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Size:    true,
		Filters: filters.NewArgs(filters.Arg("id", objectID)),
	})
	if err != nil {
		return gjson.Result{}, classify(err, "lookup container "+objectID)
	}

	// the id filter matches on prefixes
	for _, item := range items {
		if !strings.HasPrefix(item.ID, objectID) {
			continue
		}
		obj := toObject(item, i.now())
		obj.AdditionParents = &parentRefs{References: []parentRef{
			{ManagedObject: parentObject{ID: i.device.ID, Name: i.device.Name}},
		}}
		logging.FromCtx(ctx).Debug().Str("container_id", item.ID).Msg("engine container found")
		return obj.raw()
	}

	return gjson.Result{}, fmt.Errorf("container %s: %w", objectID, domain.ErrNotFound)
}

type object struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ServiceType     string      `json:"serviceType"`
	Status          string      `json:"status"`
	LastUpdated     string      `json:"lastUpdated"`
	Container       descriptor  `json:"container"`
	AdditionParents *parentRefs `json:"additionParents,omitempty"`
}

type descriptor struct {
	ContainerID     string `json:"containerId"`
	State           string `json:"state"`
	ContainerStatus string `json:"containerStatus"`
	Image           string `json:"image"`
	Ports           string `json:"ports"`
	Networks        string `json:"networks"`
	RunningFor      string `json:"runningFor"`
	Filesystem      string `json:"filesystem"`
	Command         string `json:"command"`
	ProjectName     string `json:"projectName,omitempty"`
	ServiceName     string `json:"serviceName,omitempty"`
}

type parentRefs struct {
	References []parentRef `json:"references"`
}

type parentRef struct {
	ManagedObject parentObject `json:"managedObject"`
}

type parentObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (o object) raw() (gjson.Result, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode container %s: %w", o.ID, err)
	}
	return gjson.ParseBytes(b), nil
}

// toObject shapes an engine container like the inventory object a device
// publishes for it.
func toObject(item container.Summary, now time.Time) object {
	name := ""
	if len(item.Names) > 0 {
		name = strings.TrimPrefix(item.Names[0], "/")
	}

	d := descriptor{
		ContainerID:     item.ID,
		State:           string(item.State),
		ContainerStatus: item.Status,
		Image:           item.Image,
		Ports:           formatPorts(item),
		Networks:        formatNetworks(item),
		Filesystem:      formatFilesystem(item.SizeRw, item.SizeRootFs),
		Command:         item.Command,
		ProjectName:     item.Labels[LabelComposeProject],
		ServiceName:     item.Labels[LabelComposeService],
	}
	if item.Created > 0 {
		d.RunningFor = units.HumanDuration(now.Sub(time.Unix(item.Created, 0))) + " ago"
	}

	serviceType := domain.ServiceTypeContainer
	if _, ok := item.Labels[LabelComposeProject]; ok {
		serviceType = domain.ServiceTypeContainerGroup
		name = d.ProjectName + "@" + d.ServiceName
	}

	return object{
		ID:          item.ID,
		Name:        name,
		ServiceType: serviceType,
		Status:      engineStatus(d.State),
		LastUpdated: now.UTC().Format(time.RFC3339),
		Container:   d,
	}
}

func engineStatus(state string) string {
	switch state {
	case "up", "running":
		return "up"
	default:
		return "down"
	}
}

func formatPorts(item container.Summary) string {
	formatted := make([]string, 0, len(item.Ports))
	for _, p := range item.Ports {
		port, err := nat.NewPort(p.Type, strconv.Itoa(int(p.PrivatePort)))
		if err != nil {
			continue
		}
		switch {
		case p.PublicPort == 0:
			formatted = append(formatted, string(port))
		case p.IP == "":
			formatted = append(formatted, fmt.Sprintf("%d:%s", p.PublicPort, port))
		default:
			formatted = append(formatted, fmt.Sprintf("%s:%d:%s", p.IP, p.PublicPort, port))
		}
	}
	return strings.Join(formatted, ", ")
}

func formatNetworks(item container.Summary) string {
	if item.NetworkSettings == nil {
		return ""
	}
	names := make([]string, 0, len(item.NetworkSettings.Networks))
	for name := range item.NetworkSettings.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func formatFilesystem(sizeRw, sizeRootFs int64) string {
	rw := units.HumanSizeWithPrecision(float64(sizeRw), 3)
	if sizeRootFs <= 0 {
		return rw
	}
	return fmt.Sprintf("%s (virtual %s)", rw, units.HumanSizeWithPrecision(float64(sizeRootFs), 3))
}

func classify(err error, subject string) error {
	if cerrdefs.IsNotFound(err) {
		return fmt.Errorf("%s: %w", subject, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", subject, domain.ErrUnavailable, err)
}
