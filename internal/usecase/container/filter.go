package container

import (
	"strings"

	"github.com/containerlens/containerlens/internal/domain"
)

// MatchesText reports whether a container is active and matches the query.
// Containers without an engine id or marked uninstalled never match. The
// query is a case-insensitive substring of the image, name or engine id; an
// empty query matches every active container.
func MatchesText(c domain.Container, query string) bool {
	if !c.HasEngineID() || c.IsUninstalled() {
		return false
	}
	q := strings.ToLower(query)
	return containsFold(c.Image, q) || containsFold(c.Name, q) || containsFold(c.ContainerID, q)
}

// FilterContainers keeps the containers matching the query. Grouped
// containers are dropped first unless includeGroups is set.
func FilterContainers(containers []domain.Container, includeGroups bool, query string) []domain.Container {
	result := make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		if !includeGroups && c.InGroup() {
			continue
		}
		if MatchesText(c, query) {
			result = append(result, c)
		}
	}
	return result
}

// MatchesGroup reports whether the project name or any member image matches the query.
func MatchesGroup(g domain.ContainerGroup, query string) bool {
	q := strings.ToLower(query)
	if containsFold(g.Project, q) {
		return true
	}
	for _, c := range g.Containers {
		if containsFold(c.Image, q) {
			return true
		}
	}
	return false
}

// FilterGroups keeps the groups matching the query.
func FilterGroups(groups []domain.ContainerGroup, query string) []domain.ContainerGroup {
	result := make([]domain.ContainerGroup, 0, len(groups))
	for _, g := range groups {
		if MatchesGroup(g, query) {
			result = append(result, g)
		}
	}
	return result
}

// containsFold expects lowerQuery to be lower-cased already.
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
