package output

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/gjson"
)

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table with columns aligned by tabwriter.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(t.Headers) > 0 {
		if _, err := io.WriteString(tw, strings.Join(t.Headers, "\t")+"\n"); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Column maps one field of a JSON object onto a table column.
type Column struct {
	Header string
	// Path is a gjson path relative to each row object.
	Path string
	// Key fills the cell with the row's object key instead of Path.
	Key bool
}

// TableFromJSON builds a table with one row per element found at rowsPath.
// An empty rowsPath treats the document itself as the row array. Objects
// are iterated in document order.
func TableFromJSON(raw []byte, rowsPath string, cols ...Column) *Table {
	t := &Table{Headers: make([]string, len(cols))}
	for i, c := range cols {
		t.Headers[i] = c.Header
	}

	rows := gjson.ParseBytes(raw)
	if rowsPath != "" {
		rows = rows.Get(rowsPath)
	}
	rows.ForEach(func(key, row gjson.Result) bool {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if c.Key {
				cells[i] = formatValue(key)
				continue
			}
			cells[i] = formatValue(row.Get(c.Path))
		}
		t.AddRow(cells...)
		return true
	})
	return t
}

// formatValue renders a JSON value as a table cell.
func formatValue(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "-"
	case gjson.String:
		if v.Str == "" {
			return "-"
		}
		return v.Str
	case gjson.JSON:
		if v.IsArray() {
			var parts []string
			for _, e := range v.Array() {
				parts = append(parts, formatValue(e))
			}
			if len(parts) == 0 {
				return "-"
			}
			return strings.Join(parts, ",")
		}
		return v.Raw
	default:
		return v.String()
	}
}
