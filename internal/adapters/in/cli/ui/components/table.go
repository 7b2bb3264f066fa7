// Package components renders CLI output blocks.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/containerlens/containerlens/internal/adapters/in/cli/ui/styles"
)

// Column is a table column. A zero Width leaves the column unbounded.
type Column struct {
	Title string
	Width int
}

// Table is a bordered table with a fixed column set.
type Table struct {
	columns     []Column
	rows        [][]string
	border      lipgloss.Border
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// TableOption configures a Table.
type TableOption func(*Table)

// NewTable creates a table with the given columns.
func NewTable(columns []Column, opts ...TableOption) *Table {
	t := &Table{
		columns:     columns,
		border:      lipgloss.RoundedBorder(),
		headerStyle: styles.Theme.TableHeader,
		cellStyle:   styles.Theme.TableCell,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithPlainStyles drops colors and padding.
func WithPlainStyles() TableOption {
	return func(t *Table) {
		t.headerStyle = lipgloss.NewStyle()
		t.cellStyle = lipgloss.NewStyle()
	}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render renders the table, or an empty string when it has no columns.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = truncateCell(col.Title, col.Width)
	}

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rows[r] = make([]string, len(t.columns))
		for c := range t.columns {
			if c < len(row) {
				rows[r][c] = truncateCell(row[c], t.columns[c].Width)
			}
		}
	}

	return table.New().
		Border(t.border).
		BorderStyle(styles.Theme.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.cellStyle
			if row == table.HeaderRow {
				s = t.headerStyle
			}
			if col >= 0 && col < len(t.columns) && t.columns[col].Width > 0 {
				s = s.Width(t.columns[col].Width).MaxWidth(t.columns[col].Width)
			}
			return s
		}).
		String()
}

// truncateCell cuts value to maxWidth display cells, ending with "...".
// Styled values pass through untouched.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}
	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	target := maxWidth - 3
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if width+w > target {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	if b.Len() == 0 {
		return strings.Repeat(".", maxWidth)
	}
	return b.String() + "..."
}
