// Package sample generates a small, fully consistent demo dataset: a
// baseline year of closing balances plus three statement years of balanced
// journal entries. The Trial Balance snapshots are derived by replaying the
// journal against the baseline, so every snapshot balances and both
// reconciliation identities hold by construction. Useful for demos and as
// a known-good fixture.
package sample

import (
	"fmt"
	"time"

	"three_statements/pkg/models"
)

type account struct {
	num  int
	name string
}

var (
	cash      = account{1000, "Cash"}
	ar        = account{1100, "Accounts Receivable"}
	inventory = account{1200, "Inventory"}
	equipment = account{1500, "Equipment"}
	accumDep  = account{1700, "Accumulated Depreciation"}
	ap        = account{2000, "Accounts Payable"}
	taxesPay  = account{2350, "Income Taxes Payable"}
	ltd       = account{2500, "Long Term Debt"}
	stock     = account{3000, "Common Stock"}
	retained  = account{3100, "Retained Earnings"}
	dividends = account{3200, "Dividends"}

	revenue = account{4000, "Revenue"}
	cogs    = account{5000, "Cost of Goods Sold"}
	mktg    = account{6300, "Marketing Expense"}
	depExp  = account{6700, "Depreciation Expense"}
	intExp  = account{8000, "Interest Expense"}
	taxExp  = account{8100, "Income Tax Expense"}
)

var creditNormalSet = map[int]bool{
	accumDep.num: true, ap.num: true, taxesPay.num: true, ltd.num: true,
	stock.num: true, retained.num: true, revenue.num: true,
}

// leg is one side of a journal entry.
type leg struct {
	acct   account
	debit  float64
	credit float64
}

// entry is one balanced journal entry.
type entry struct {
	id   string
	date time.Time
	legs []leg
}

// Dataset builds the demo Trial Balance and General Ledger starting at
// baselineYear, with statement years baselineYear+1..baselineYear+years.
func Dataset(baselineYear, years int) (tb, gl []models.LedgerRecord) {
	balances := map[int]float64{
		cash.num:      5000,
		ar.num:        2000,
		inventory.num: 1000,
		equipment.num: 10000,
		accumDep.num:  2000,
		ap.num:        1500,
		ltd.num:       4000,
		stock.num:     5000,
		retained.num:  5500,
	}
	names := map[int]string{}
	for _, a := range []account{cash, ar, inventory, equipment, accumDep, ap, taxesPay, ltd, stock, retained} {
		names[a.num] = a.name
	}

	tb = append(tb, snapshot(baselineYear, balances, names)...)

	for i := 1; i <= years; i++ {
		year := baselineYear + i
		growth := float64(i-1) * 500

		for _, e := range yearEntries(year, growth) {
			for _, l := range e.legs {
				gl = append(gl, models.LedgerRecord{
					Date:          e.date,
					AccountNumber: l.acct.num,
					AccountName:   l.acct.name,
					Debit:         l.debit,
					Credit:        l.credit,
					TransactionID: e.id,
				})

				// Replay against balances. Income, expense, and dividend
				// legs close straight into retained earnings.
				switch l.acct.num {
				case revenue.num:
					balances[retained.num] += l.credit - l.debit
				case cogs.num, mktg.num, depExp.num, intExp.num, taxExp.num, dividends.num:
					balances[retained.num] -= l.debit - l.credit
				default:
					if creditNormalSet[l.acct.num] {
						balances[l.acct.num] += l.credit - l.debit
					} else {
						balances[l.acct.num] += l.debit - l.credit
					}
				}
			}
		}

		tb = append(tb, snapshot(year, balances, names)...)
	}
	return tb, gl
}

// yearEntries is one statement year's journal: sales on account and for
// cash, inventory purchase and payment cycles, operating costs,
// depreciation, debt service, tax accrual and a dividend.
func yearEntries(year int, growth float64) []entry {
	d := func(month, day int) time.Time {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}
	id := func(n int) string { return fmt.Sprintf("JE-%d-%03d", year, n) }

	return []entry{
		{id(1), d(2, 15), []leg{
			{cash, 9000 + growth, 0}, {revenue, 0, 9000 + growth},
		}},
		{id(2), d(3, 10), []leg{
			{ar, 1500, 0}, {revenue, 0, 1500},
		}},
		{id(3), d(11, 20), []leg{
			{cash, 1300, 0}, {ar, 0, 1300},
		}},
		{id(4), d(4, 5), []leg{
			{inventory, 6200, 0}, {ap, 0, 6200},
		}},
		{id(5), d(6, 30), []leg{
			{cogs, 6000, 0}, {inventory, 0, 6000},
		}},
		{id(6), d(7, 15), []leg{
			{ap, 6100, 0}, {cash, 0, 6100},
		}},
		{id(7), d(8, 31), []leg{
			{mktg, 2000, 0}, {cash, 0, 2000},
		}},
		{id(8), d(12, 31), []leg{
			{depExp, 500, 0}, {accumDep, 0, 500},
		}},
		{id(9), d(12, 31), []leg{
			{intExp, 200, 0}, {cash, 0, 200},
		}},
		{id(10), d(12, 31), []leg{
			{taxExp, 300, 0}, {taxesPay, 0, 300},
		}},
		{id(11), d(12, 31), []leg{
			{dividends, 400, 0}, {cash, 0, 400},
		}},
	}
}

// snapshot emits a post-closing Trial Balance for December 31 of the year.
func snapshot(year int, balances map[int]float64, names map[int]string) []models.LedgerRecord {
	date := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	order := []int{
		cash.num, ar.num, inventory.num, equipment.num, accumDep.num,
		ap.num, taxesPay.num, ltd.num, stock.num, retained.num,
	}

	rows := make([]models.LedgerRecord, 0, len(order))
	for _, num := range order {
		v := balances[num]
		rec := models.LedgerRecord{
			Date:          date,
			AccountNumber: num,
			AccountName:   names[num],
		}
		debitNormal := !creditNormalSet[num]
		switch {
		case debitNormal && v >= 0:
			rec.Debit = v
		case debitNormal:
			rec.Credit = -v
		case v >= 0:
			rec.Credit = v
		default:
			rec.Debit = -v
		}
		rows = append(rows, rec)
	}
	return rows
}
