// Package ingest reads raw tabular ledger exports into a header + rows shape
// the normalizer can resolve. It makes no assumptions about column names or
// order; that is the normalizer's job.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is an untyped tabular dataset: one header row and string cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ReadCSV parses a CSV stream into a Table. The first row is the header.
// Rows shorter than the header are right-padded with empty cells so the
// normalizer sees a rectangular table; longer rows are truncated.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("read csv: empty input")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(stripBOM(h))
	}

	table := Table{Headers: headers}
	for _, rec := range records[1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ReadFile loads a table from disk, dispatching on extension: .csv is parsed
// as CSV, .html/.htm as an HTML table export.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return ReadHTML(f)
	}
	return ReadCSV(f)
}

// stripBOM drops a UTF-8 byte-order mark that spreadsheet exports often
// prepend to the first header cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
