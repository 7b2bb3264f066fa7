package components

import (
	"strings"

	"github.com/containerlens/containerlens/internal/adapters/in/cli/ui/styles"
)

// ContainerStatus renders an inventory status with a colored marker.
func ContainerStatus(status string) string {
	switch strings.ToLower(status) {
	case "up", "running":
		return styles.Theme.Success.Render(styles.IconUp + " " + status)
	case "down", "exited", "stopped":
		return styles.Theme.Warning.Render(styles.IconDown + " " + status)
	case "uninstalled":
		return styles.Theme.Muted.Render(styles.IconGone + " " + status)
	case "":
		return styles.Theme.Muted.Render("-")
	default:
		return status
	}
}

// KeyValue renders aligned "key: value" lines.
func KeyValue(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(styles.Theme.Title.Render(p[0] + ":"))
		b.WriteString(strings.Repeat(" ", width-len(p[0])+1))
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}
