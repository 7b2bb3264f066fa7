// Package domain contains pure business types without external dependencies.
// These types are used throughout the application and have no tags or framework dependencies.
package domain

// StatusUninstalled marks a container that was removed from the engine but is
// still known to the inventory. Such containers are hidden from active views.
const StatusUninstalled = "uninstalled"

// Container represents one running or stopped container instance as known by the inventory.
type Container struct {
	ID          string // inventory object id
	Name        string
	ContainerID string // engine-level id, empty for placeholders
	Ports       string
	Command     string
	Networks    string
	Filesystem  string
	Image       string
	RunningFor  string
	State       string
	Status      string
	Project     string // compose project, empty when not part of a group
	LastUpdated string
}

// HasEngineID reports whether the container is linked to an engine container.
func (c Container) HasEngineID() bool {
	return c.ContainerID != ""
}

// IsUninstalled reports whether the container carries the uninstalled sentinel status.
func (c Container) IsUninstalled() bool {
	return c.Status == StatusUninstalled
}

// InGroup reports whether the container belongs to a project.
func (c Container) InGroup() bool {
	return c.Project != ""
}

// ContainerGroup aggregates the containers of one project.
type ContainerGroup struct {
	Project    string
	Containers []Container
}

// ContainerParent identifies the device hosting a container.
type ContainerParent struct {
	Name string
	ID   string
}

// Capabilities describes which container actions are available.
type Capabilities struct {
	Stop   bool
	Remove bool
}

// ViewContext is the context a view is opened in, usually the object the view is attached to.
type ViewContext struct {
	ID          string
	ServiceType string
}
