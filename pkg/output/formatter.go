// Package output formats command results as JSON, YAML or aligned text
// tables for terminal and file output.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formatter renders a result value into a byte slice suitable for writing
// to stdout or a file.
type Formatter interface {
	Format(data any, pretty bool) ([]byte, error)
}

// NewFormatter returns the formatter for the given format name. Unknown
// names fall back to JSON.
func NewFormatter(format string) Formatter {
	switch format {
	case "yaml":
		return &YAMLFormatter{}
	case "table":
		return &TableFormatter{}
	case "json":
		return &JSONFormatter{}
	default:
		return &JSONFormatter{}
	}
}

// JSONFormatter renders results as JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	return append(out, '\n'), nil
}

// YAMLFormatter renders results as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any, pretty bool) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML output: %w", err)
	}
	return out, nil
}

// TableFormatter renders results as an aligned text table. It handles
// slices of structs or maps; scalar values are printed as-is.
type TableFormatter struct{}

func (f *TableFormatter) Format(data any, pretty bool) ([]byte, error) {
	rows, headers, err := tabulate(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render table: %w", err)
	}
	return buf.Bytes(), nil
}

// tabulate flattens arbitrary result data into rows via a JSON round trip,
// so the table columns follow the same field names as the JSON output.
func tabulate(data any) ([][]string, []string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to tabulate output: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, nil, fmt.Errorf("failed to tabulate output: %w", err)
	}

	switch v := generic.(type) {
	case []any:
		return tabulateSlice(v)
	case map[string]any:
		return tabulateSlice([]any{v})
	default:
		return [][]string{{fmt.Sprintf("%v", v)}}, []string{"value"}, nil
	}
}

func tabulateSlice(items []any) ([][]string, []string, error) {
	headerSet := make(map[string]bool)
	var headers []string

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			// Mixed or scalar slice: one value per row.
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, []string{fmt.Sprintf("%v", it)})
			}
			return rows, []string{"value"}, nil
		}
		for k := range m {
			if !headerSet[k] {
				headerSet[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m := item.(map[string]any)
		row := make([]string, len(headers))
		for i, h := range headers {
			if val, ok := m[h]; ok && val != nil {
				row[i] = formatCell(val)
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.3f", val)
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	default:
		return fmt.Sprintf("%v", val)
	}
}
