package container

import (
	"github.com/tidwall/gjson"

	"github.com/containerlens/containerlens/internal/domain"
)

// Projector shapes raw inventory objects into containers.
//
// Two shapes are understood: container fields set directly on the object, and
// container fields nested under the descriptor fragment. Identity, name, status
// and lastUpdated always come from the outer object.
type Projector struct {
	// RequireDescriptor rejects objects without the nested descriptor.
	RequireDescriptor bool
}

// ToContainer maps a raw object. The second result is false when the object
// has no id or lacks a required descriptor.
func (p Projector) ToContainer(raw gjson.Result) (domain.Container, bool) {
	id := raw.Get("id")
	if !raw.IsObject() || !id.Exists() || id.String() == "" {
		return domain.Container{}, false
	}

	source := raw
	descriptor := raw.Get(domain.DescriptorFragment)
	if descriptor.IsObject() {
		source = descriptor
	} else if p.RequireDescriptor {
		return domain.Container{}, false
	}

	project := source.Get("projectName").String()
	if project == "" {
		project = raw.Get("projectName").String()
	}

	return domain.Container{
		ID:          id.String(),
		Name:        raw.Get("name").String(),
		ContainerID: source.Get("containerId").String(),
		Ports:       source.Get("ports").String(),
		Command:     source.Get("command").String(),
		Networks:    source.Get("networks").String(),
		Filesystem:  source.Get("filesystem").String(),
		Image:       source.Get("image").String(),
		RunningFor:  source.Get("runningFor").String(),
		State:       source.Get("state").String(),
		Status:      raw.Get("status").String(),
		Project:     project,
		LastUpdated: raw.Get("lastUpdated").String(),
	}, true
}

// ToContainerWithParent maps a raw object fetched with its parents.
// The last addition parent reference wins when several are present; no
// references yield an empty parent.
func (p Projector) ToContainerWithParent(raw gjson.Result) (domain.Container, domain.ContainerParent, bool) {
	c, ok := p.ToContainer(raw)
	if !ok {
		return domain.Container{}, domain.ContainerParent{}, false
	}

	var parent domain.ContainerParent
	refs := raw.Get("additionParents.references").Array()
	if n := len(refs); n > 0 {
		mo := refs[n-1].Get("managedObject")
		parent = domain.ContainerParent{
			Name: mo.Get("name").String(),
			ID:   mo.Get("id").String(),
		}
	}

	return c, parent, true
}

// GroupByProject partitions containers by project, in first-occurrence order.
// Containers without a project belong to no group.
func GroupByProject(containers []domain.Container) []domain.ContainerGroup {
	index := make(map[string]int)
	groups := make([]domain.ContainerGroup, 0)

	for _, c := range containers {
		if !c.InGroup() {
			continue
		}
		i, ok := index[c.Project]
		if !ok {
			i = len(groups)
			index[c.Project] = i
			groups = append(groups, domain.ContainerGroup{Project: c.Project})
		}
		groups[i].Containers = append(groups[i].Containers, c)
	}

	return groups
}
