package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/containerlens/containerlens/internal/adapters/in/cli/ui/styles"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// render writes v in the selected format. table is only called for table output.
func render(w io.Writer, format string, v any, table func() string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, table())
		return err
	}
}

func emptyNotice(what string) string {
	return styles.Theme.Muted.Render("No " + what + " found")
}

func verdict(allowed bool) string {
	if allowed {
		return color.New(color.FgGreen, color.Bold).Sprint("allowed")
	}
	return color.New(color.FgRed, color.Bold).Sprint("denied")
}

func warn(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, "Warning: "+format+"\n", args...)
}
