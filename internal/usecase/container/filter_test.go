package container

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/containerlens/containerlens/internal/domain"
)

func TestMatchesText(t *testing.T) {
	tests := []struct {
		name      string
		container domain.Container
		query     string
		want      bool
	}{
		{
			name:      "image case-insensitive",
			container: domain.Container{Image: "nginx:latest", ContainerID: "abc", Status: "running"},
			query:     "NGINX",
			want:      true,
		},
		{
			name:      "name match",
			container: domain.Container{Name: "Mosquitto", ContainerID: "abc", Status: "up"},
			query:     "mosq",
			want:      true,
		},
		{
			name:      "engine id match",
			container: domain.Container{Image: "redis", ContainerID: "f00dbeef", Status: "up"},
			query:     "dbe",
			want:      true,
		},
		{
			name:      "no match",
			container: domain.Container{Name: "db", Image: "postgres", ContainerID: "abc", Status: "up"},
			query:     "nginx",
			want:      false,
		},
		{
			name:      "no engine id never matches",
			container: domain.Container{Image: "nginx", Status: "up"},
			query:     "nginx",
			want:      false,
		},
		{
			name:      "uninstalled never matches",
			container: domain.Container{Image: "nginx", ContainerID: "abc", Status: "uninstalled"},
			query:     "nginx",
			want:      false,
		},
		{
			name:      "empty query matches active",
			container: domain.Container{ContainerID: "abc", Status: "down"},
			query:     "",
			want:      true,
		},
		{
			name:      "empty query matches empty status",
			container: domain.Container{ContainerID: "abc"},
			query:     "",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesText(tt.container, tt.query))
		})
	}
}

func TestMatchesText_EmptyQueryProperty(t *testing.T) {
	containers := []domain.Container{
		{ContainerID: "a", Status: "running"},
		{ContainerID: "b", Status: "uninstalled"},
		{ContainerID: "", Status: "running"},
		{ContainerID: "", Status: "uninstalled"},
		{ContainerID: "c"},
	}

	for _, c := range containers {
		want := c.ContainerID != "" && c.Status != "uninstalled"
		assert.Equal(t, want, MatchesText(c, ""), "container %+v", c)
	}
}

func sampleContainers() []domain.Container {
	return []domain.Container{
		{ID: "1", Name: "nginx", Image: "nginx:latest", ContainerID: "c1", Status: "up", Project: "web"},
		{ID: "2", Name: "mosquitto", Image: "eclipse-mosquitto", ContainerID: "c2", Status: "up"},
		{ID: "3", Name: "app", Image: "myapp:1.0", ContainerID: "c3", Status: "up", Project: "web"},
		{ID: "4", Name: "old", Image: "nginx:1.0", ContainerID: "c4", Status: "uninstalled"},
		{ID: "5", Name: "placeholder", Image: "nginx:stable"},
		{ID: "6", Name: "proxy", Image: "nginx:alpine", ContainerID: "c6", Status: "down"},
	}
}

func TestFilterContainers(t *testing.T) {
	containers := sampleContainers()

	withGroups := FilterContainers(containers, true, "nginx")
	assert.Equal(t, []domain.Container{containers[0], containers[5]}, withGroups)

	withoutGroups := FilterContainers(containers, false, "nginx")
	assert.Equal(t, []domain.Container{containers[5]}, withoutGroups)

	all := FilterContainers(containers, true, "")
	assert.Equal(t, []domain.Container{containers[0], containers[1], containers[2], containers[5]}, all)
}

func TestFilterContainers_ExcludingGroupsIsSubset(t *testing.T) {
	containers := sampleContainers()

	for _, q := range []string{"", "nginx", "c", "APP", "missing"} {
		with := FilterContainers(containers, true, q)
		without := FilterContainers(containers, false, q)

		assert.LessOrEqual(t, len(without), len(with))
		for _, c := range without {
			assert.Contains(t, with, c, "query %q", q)
		}
	}
}

func TestFilterContainers_Empty(t *testing.T) {
	assert.Empty(t, FilterContainers(nil, true, "x"))
}

func TestMatchesGroup(t *testing.T) {
	group := domain.ContainerGroup{
		Project: "Monitoring",
		Containers: []domain.Container{
			{Image: "grafana/grafana"},
			{Image: "prom/prometheus"},
		},
	}

	assert.True(t, MatchesGroup(group, "monitor"))
	assert.True(t, MatchesGroup(group, "PROMETHEUS"))
	assert.True(t, MatchesGroup(group, ""))
	assert.False(t, MatchesGroup(group, "nginx"))
}

func TestFilterGroups(t *testing.T) {
	groups := []domain.ContainerGroup{
		{Project: "web", Containers: []domain.Container{{Image: "nginx"}}},
		{Project: "iot", Containers: []domain.Container{{Image: "mosquitto"}}},
		{Project: "webhooks", Containers: []domain.Container{{Image: "node"}}},
	}

	assert.Equal(t, []domain.ContainerGroup{groups[0], groups[2]}, FilterGroups(groups, "web"))
	assert.Equal(t, []domain.ContainerGroup{groups[1]}, FilterGroups(groups, "MOSQ"))
	assert.Equal(t, groups, FilterGroups(groups, ""))
	assert.Empty(t, FilterGroups(groups, "redis"))
}
