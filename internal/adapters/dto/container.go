package dto

import "github.com/containerlens/containerlens/internal/domain"

// Container is the wire form of a container.
type Container struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	ContainerID string `json:"containerId,omitempty" yaml:"containerId,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	State       string `json:"state,omitempty" yaml:"state,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	Project     string `json:"project,omitempty" yaml:"project,omitempty"`
	Ports       string `json:"ports,omitempty" yaml:"ports,omitempty"`
	Command     string `json:"command,omitempty" yaml:"command,omitempty"`
	Networks    string `json:"networks,omitempty" yaml:"networks,omitempty"`
	Filesystem  string `json:"filesystem,omitempty" yaml:"filesystem,omitempty"`
	RunningFor  string `json:"runningFor,omitempty" yaml:"runningFor,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// ContainerGroup is the wire form of a project and its containers.
type ContainerGroup struct {
	Project    string      `json:"project" yaml:"project"`
	Containers []Container `json:"containers" yaml:"containers"`
}

// Parent identifies the device hosting a container.
type Parent struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// ContainerDetail is a single container with its parent device.
type ContainerDetail struct {
	Container Container `json:"container" yaml:"container"`
	Parent    *Parent   `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Overview combines the standalone containers and the groups of a device.
type Overview struct {
	Containers []Container      `json:"containers" yaml:"containers"`
	Groups     []ContainerGroup `json:"groups" yaml:"groups"`
}

// AccessResponse reports whether a view may be shown.
type AccessResponse struct {
	Allowed bool `json:"allowed" yaml:"allowed"`
}

// CapabilitiesResponse lists the container actions that are available.
type CapabilitiesResponse struct {
	Stop   bool `json:"stop" yaml:"stop"`
	Remove bool `json:"remove" yaml:"remove"`
}

// FromContainer converts a domain container.
func FromContainer(c domain.Container) Container {
	return Container{
		ID:          c.ID,
		Name:        c.Name,
		ContainerID: c.ContainerID,
		Image:       c.Image,
		State:       c.State,
		Status:      c.Status,
		Project:     c.Project,
		Ports:       c.Ports,
		Command:     c.Command,
		Networks:    c.Networks,
		Filesystem:  c.Filesystem,
		RunningFor:  c.RunningFor,
		LastUpdated: c.LastUpdated,
	}
}

// FromContainers converts a list of domain containers. The result is never nil.
func FromContainers(cs []domain.Container) []Container {
	out := make([]Container, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromContainer(c))
	}
	return out
}

// FromGroups converts a list of domain groups. The result is never nil.
func FromGroups(gs []domain.ContainerGroup) []ContainerGroup {
	out := make([]ContainerGroup, 0, len(gs))
	for _, g := range gs {
		out = append(out, ContainerGroup{Project: g.Project, Containers: FromContainers(g.Containers)})
	}
	return out
}

// FromDetail converts a container and its parent. An empty parent is omitted.
func FromDetail(c domain.Container, parent domain.ContainerParent) ContainerDetail {
	detail := ContainerDetail{Container: FromContainer(c)}
	if parent.ID != "" {
		detail.Parent = &Parent{ID: parent.ID, Name: parent.Name}
	}
	return detail
}

// FromCapabilities converts a capability set.
func FromCapabilities(c domain.Capabilities) CapabilitiesResponse {
	return CapabilitiesResponse{Stop: c.Stop, Remove: c.Remove}
}
