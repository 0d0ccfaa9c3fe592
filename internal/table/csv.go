// Package table reads and writes the benchmark results table format.
//
// The format is comma-separated with a header line and otherwise unquoted
// plain values, except for one documented irregularity: the first column
// (the model name) may itself contain commas that were introduced upstream
// without quoting. Load recovers those names with a narrow heuristic, see
// reconstructRow. This is not general CSV quoting and is deliberately not
// generalized beyond the first column.
package table

import (
	"fmt"
	"os"
	"strings"
)

// Delimiter separates fields in the table format.
const Delimiter = ","

// Row maps a column header to its string cell value.
type Row map[string]string

// Table is a fully loaded results table. Headers preserve the input order
// and are written back verbatim by Save.
type Table struct {
	Headers []string
	Rows    []Row
}

// NameColumn returns the header of the model-name column, which is by
// convention the first column of the table.
func (t *Table) NameColumn() string {
	if len(t.Headers) == 0 {
		return ""
	}
	return t.Headers[0]
}

// Column returns all values of one column in row order. Missing cells
// yield empty strings.
func (t *Table) Column(header string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[header]
	}
	return values
}

// Load parses the table text. The first line is the header; every data
// line must reconstruct to exactly one value per header or the whole load
// fails.
func Load(text string) (*Table, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var headerLine string
	var dataStart int
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerLine = line
			dataStart = i + 1
			break
		}
	}
	if headerLine == "" {
		return nil, fmt.Errorf("invalid csv: no header line")
	}

	headers := strings.Split(headerLine, Delimiter)
	t := &Table{Headers: headers}

	for i, line := range lines[dataStart:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := reconstructRow(line, headers)
		if err != nil {
			return nil, fmt.Errorf("invalid csv: line %d: %w", dataStart+i+1, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// LoadFile reads and parses a table from disk.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", path, err)
	}
	t, err := Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse table %q: %w", path, err)
	}
	return t, nil
}

// reconstructRow splits a data line and maps fields to headers.
//
// When the split yields more fields than headers, the excess is assumed to
// come from unescaped delimiters inside the first column: the first
// excess+1 fields are rejoined with the delimiter to recover the original
// name, and the remaining fields map to the remaining headers in order.
// The heuristic assumes exactly one overflowing field and that it is the
// first column; it cannot recover delimiters in other columns.
func reconstructRow(line string, headers []string) (Row, error) {
	fields := strings.Split(line, Delimiter)

	if len(fields) < len(headers) {
		return nil, fmt.Errorf("%d fields for %d headers", len(fields), len(headers))
	}

	if excess := len(fields) - len(headers); excess > 0 {
		name := strings.Join(fields[:excess+1], Delimiter)
		fields = append([]string{name}, fields[excess+1:]...)
	}

	row := make(Row, len(headers))
	for i, h := range headers {
		row[h] = fields[i]
	}
	return row, nil
}

// Save serializes the table using the original header order. Missing
// fields become empty strings rather than failing the write.
func (t *Table) Save() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Headers, Delimiter))
	b.WriteString("\n")

	for _, row := range t.Rows {
		fields := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			fields[i] = row[h]
		}
		b.WriteString(strings.Join(fields, Delimiter))
		b.WriteString("\n")
	}

	return b.String()
}

// SaveFile writes the serialized table to disk.
func (t *Table) SaveFile(path string) error {
	if err := os.WriteFile(path, []byte(t.Save()), 0o644); err != nil {
		return fmt.Errorf("write table %q: %w", path, err)
	}
	return nil
}
