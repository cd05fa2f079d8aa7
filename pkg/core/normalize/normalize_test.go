package normalize

import (
	"testing"
	"time"

	"three_statements/pkg/models"
)

func TestResolveHeadersVariants(t *testing.T) {
	headers := []string{"TxnDate", "Acct_Num", "Account Name", "DR", "CR", "TXN_ID", "Memo"}
	cols := ResolveHeaders(headers, DefaultAliases())

	want := map[string]int{
		FieldDate:          0,
		FieldAccountNumber: 1,
		FieldAccountName:   2,
		FieldDebit:         3,
		FieldCredit:        4,
		FieldTransactionID: 5,
	}
	for field, idx := range want {
		if cols[field] != idx {
			t.Errorf("field %s: got column %d, want %d", field, cols[field], idx)
		}
	}
}

func TestRecordsMissingColumn(t *testing.T) {
	table := Tabular{
		Headers: []string{"TxnDate", "AccountName", "Debit", "Credit"},
		Rows:    [][]string{{"2021-01-01", "Cash", "100", ""}},
	}
	records, findings := Records(table, DefaultAliases(), "TB")

	if records != nil {
		t.Fatalf("expected no records when a required column is missing, got %d", len(records))
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Severity != models.SeverityCritical || f.Category != models.FindingMissingColumn {
		t.Errorf("got %s/%s, want Critical/MissingColumn", f.Severity, f.Category)
	}
}

func TestRecordsParsesRows(t *testing.T) {
	table := Tabular{
		Headers: []string{"Date", "AccountNumber", "AccountName", "Debit", "Credit", "TransactionID"},
		Rows: [][]string{
			{"2021-03-15", "1000", "Cash", "$1,234.56", "", "T1"},
			{"03/16/2021", "2000", "Accounts Payable", "", "(500)", ""},
			{"not-a-date", "1100", "AR", "10", "", ""},
		},
	}
	records, findings := Records(table, DefaultAliases(), "GL")
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %v", findings)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].Debit != 1234.56 {
		t.Errorf("debit: got %v, want 1234.56", records[0].Debit)
	}
	if records[0].TransactionID != "T1" {
		t.Errorf("transaction id: got %q", records[0].TransactionID)
	}
	if records[1].Credit != -500 {
		t.Errorf("parenthesized credit: got %v, want -500", records[1].Credit)
	}
	if records[1].Date != time.Date(2021, 3, 16, 0, 0, 0, 0, time.UTC) {
		t.Errorf("US date: got %v", records[1].Date)
	}
	if records[2].HasDate() {
		t.Errorf("unparseable date should yield the zero sentinel, got %v", records[2].Date)
	}
}

func TestRecordsToleratesRaggedRows(t *testing.T) {
	table := Tabular{
		Headers: []string{"Date", "AccountNumber", "AccountName", "Debit", "Credit"},
		Rows: [][]string{
			{"2021-01-01", "1000", "Cash", "100", ""},
			{"2021-01-02", "4000"}, // short row
		},
	}
	records, _ := Records(table, DefaultAliases(), "TB")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	r := records[1]
	if r.AccountNumber != 4000 || r.AccountName != "" || r.Debit != 0 || r.Credit != 0 {
		t.Errorf("short row parsed as %+v", r)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"nan", 0, false},
		{"-", 0, false},
		{"100", 100, false},
		{"$2,500.75", 2500.75, false},
		{"(1,000)", -1000, false},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseAmount(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2021-12-31", "2021/12/31", "12/31/2021", "31-Dec-2021", "Dec 31, 2021"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDate("31st of December"); err == nil {
		t.Error("expected error for unrecognized format")
	}
}

func TestParseAccountNumberFloatRendering(t *testing.T) {
	got, err := ParseAccountNumber("1000.0")
	if err != nil || got != 1000 {
		t.Errorf("ParseAccountNumber(\"1000.0\") = %d, %v; want 1000, nil", got, err)
	}
}
