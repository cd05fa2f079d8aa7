// Package normalize maps heterogeneous ledger exports onto the canonical
// LedgerRecord shape. Header matching is case-insensitive and alias-driven;
// amount and date parsing tolerate the formatting spreadsheet tools emit.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"three_statements/pkg/models"
)

// Canonical field names resolved from raw headers.
const (
	FieldDate          = "date"
	FieldAccountNumber = "accountNumber"
	FieldAccountName   = "accountName"
	FieldDebit         = "debit"
	FieldCredit        = "credit"
	FieldTransactionID = "transactionId"
)

// RequiredFields are the canonical fields every ledger must resolve.
// TransactionID is optional and only meaningful for GL data.
var RequiredFields = []string{
	FieldDate, FieldAccountNumber, FieldAccountName, FieldDebit, FieldCredit,
}

// AliasTable maps each canonical field to the header variants accepted for
// it. Matching squashes case, spaces, and underscores, so "Txn Date",
// "txn_date", and "TXNDATE" all hit the same alias.
type AliasTable map[string][]string

// DefaultAliases mirrors the header variants seen in real ledger exports.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldDate:          {"txndate", "date", "transactiondate", "transdate", "posting_date"},
		FieldAccountNumber: {"accountnumber", "account_number", "acct_num", "account", "acct", "accountcode"},
		FieldAccountName:   {"accountname", "account_name", "acct_name", "description", "accountdescription"},
		FieldDebit:         {"debit", "dr", "debitamount"},
		FieldCredit:        {"credit", "cr", "creditamount"},
		FieldTransactionID: {"transactionid", "transaction_id", "txn_id", "txnid", "glid", "journalid"},
	}
}

// Tabular is the minimal table shape the normalizer consumes.
type Tabular struct {
	Headers []string
	Rows    [][]string
}

// squash lowers a header and removes separators for alias comparison.
func squash(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	h = strings.ReplaceAll(h, "-", "")
	return h
}

// ResolveHeaders maps each canonical field to its column index, or -1.
func ResolveHeaders(headers []string, aliases AliasTable) map[string]int {
	lookup := make(map[string]string) // squashed variant -> canonical
	for canonical, variants := range aliases {
		for _, v := range variants {
			lookup[squash(v)] = canonical
		}
	}

	resolved := map[string]int{
		FieldDate: -1, FieldAccountNumber: -1, FieldAccountName: -1,
		FieldDebit: -1, FieldCredit: -1, FieldTransactionID: -1,
	}
	for idx, h := range headers {
		canonical, ok := lookup[squash(h)]
		if !ok {
			continue // extra column, dropped silently
		}
		if resolved[canonical] == -1 {
			resolved[canonical] = idx
		}
	}
	return resolved
}

// Records converts a raw table into LedgerRecords. Missing required columns
// produce one Critical MissingColumn finding per field and no records.
// Unparseable dates become the zero-time sentinel; unparseable amounts
// parse as zero and are reported through the returned findings, never
// silently corrected row-by-row.
func Records(t Tabular, aliases AliasTable, source string) ([]models.LedgerRecord, []models.Finding) {
	var findings []models.Finding

	cols := ResolveHeaders(t.Headers, aliases)
	missing := false
	for _, field := range RequiredFields {
		if cols[field] == -1 {
			missing = true
			findings = append(findings, models.Finding{
				Severity: models.SeverityCritical,
				Category: models.FindingMissingColumn,
				Source:   source,
				Message:  fmt.Sprintf("required column %q not found (accepted variants: %s)", field, strings.Join(aliases[field], ", ")),
			})
		}
	}
	if missing {
		return nil, findings
	}

	records := make([]models.LedgerRecord, 0, len(t.Rows))
	var badAmountRows []int
	for i, row := range t.Rows {
		rec := models.LedgerRecord{
			AccountName: strings.TrimSpace(cell(row, cols[FieldAccountName])),
		}

		rec.Date, _ = ParseDate(cell(row, cols[FieldDate]))

		if n, err := ParseAccountNumber(cell(row, cols[FieldAccountNumber])); err == nil {
			rec.AccountNumber = n
		}

		debit, errD := ParseAmount(cell(row, cols[FieldDebit]))
		credit, errC := ParseAmount(cell(row, cols[FieldCredit]))
		if errD != nil || errC != nil {
			badAmountRows = append(badAmountRows, i)
		}
		rec.Debit = debit
		rec.Credit = credit

		if idx := cols[FieldTransactionID]; idx != -1 {
			rec.TransactionID = strings.TrimSpace(cell(row, idx))
		}

		records = append(records, rec)
	}

	if len(badAmountRows) > 0 {
		sample := badAmountRows
		if len(sample) > 50 {
			sample = sample[:50]
		}
		findings = append(findings, models.Finding{
			Severity:      models.SeverityWarning,
			Category:      models.FindingInvalidAmount,
			Source:        source,
			Message:       fmt.Sprintf("%d row(s) have non-numeric debit/credit amounts; parsed as zero", len(badAmountRows)),
			Rows:          sample,
			TotalAffected: len(badAmountRows),
		})
	}

	return records, findings
}

// cell reads a column from a possibly ragged row; the ingest readers pad
// rows to the header width, but hand-built tables may not.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

var (
	currencyStripper = regexp.MustCompile(`[$,\s]`)
	parenNegative    = regexp.MustCompile(`^\((.*)\)$`)
)

// ParseAmount coerces spreadsheet-style numbers: currency symbols and
// thousands separators are stripped, parenthesized values are negative.
// Empty and null-ish strings parse as zero without error.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "-":
		return 0, nil
	}
	s = currencyStripper.ReplaceAllString(s, "")
	if m := parenNegative.FindStringSubmatch(s); m != nil {
		s = "-" + m[1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}

// ParseAccountNumber accepts integer codes, tolerating a float rendering
// like "1000.0" that spreadsheet round-trips introduce.
func ParseAccountNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty account number")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := ParseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("parse account number %q: %w", s, err)
	}
	return int(f), nil
}

// dateLayouts are tried in order; first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses the common textual date formats ledger exports use.
// Failure returns the zero time and an error; callers keep the row and let
// the validator report the sentinel.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}
