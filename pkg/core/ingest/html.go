package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadHTML extracts the first data table from an HTML document. Web-based
// accounting tools commonly export ledgers as single-table HTML pages; the
// first <table> with at least a header row and one data row wins.
// Header cells come from <th> elements, or from the first row's <td>s when
// the export skips <th> entirely.
func ReadHTML(r io.Reader) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("parse html: %w", err)
	}

	var table Table
	var found bool

	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		candidate := extractTable(sel)
		if len(candidate.Headers) > 0 && len(candidate.Rows) > 0 {
			table = candidate
			found = true
			return false
		}
		return true
	})

	if !found {
		return Table{}, fmt.Errorf("parse html: no data table found")
	}
	return table, nil
}

func extractTable(sel *goquery.Selection) Table {
	var t Table

	sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		isHeader := false

		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			if goquery.NodeName(cell) == "th" {
				isHeader = true
			}
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})

		if len(cells) == 0 {
			return
		}
		if len(t.Headers) == 0 && (isHeader || len(t.Rows) == 0) {
			t.Headers = cells
			return
		}

		// Pad or truncate to the header width.
		normalized := make([]string, len(t.Headers))
		for i := range t.Headers {
			if i < len(cells) {
				normalized[i] = cells[i]
			}
		}
		t.Rows = append(t.Rows, normalized)
	})

	return t
}
