package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"
)

// OutputFormat is the value of the --output flag.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// IsStructured reports whether format is json or yaml.
func IsStructured(format string) bool {
	switch OutputFormat(format) {
	case FormatJSON, FormatYAML:
		return true
	}
	return false
}

// OutputResults encodes data as JSON or YAML. Text output is left to the
// caller, which knows how to lay out its own results.
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// TableFormatter aligns tab-separated columns.
type TableFormatter struct {
	tw *tabwriter.Writer
}

// NewTableFormatter creates a table writing to w.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

// Row adds one row.
func (t *TableFormatter) Row(values ...string) {
	for i, v := range values {
		if i > 0 {
			io.WriteString(t.tw, "\t")
		}
		io.WriteString(t.tw, v)
	}
	io.WriteString(t.tw, "\n")
}

// Flush writes the aligned rows.
func (t *TableFormatter) Flush() {
	t.tw.Flush()
}

var byteUnits = []string{"KB", "MB", "GB", "TB"}

// FormatBytes renders a size as "512 B", "1.5 KB" and so on.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n) / 1024
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}

// TruncateString shortens s to maxWidth cells, ending it with "...".
func TruncateString(s string, maxWidth int) string {
	return truncate.StringWithTail(s, uint(maxWidth), "...")
}
