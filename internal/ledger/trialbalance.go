package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow places an account's net balance in either the debit or the
// credit column. Exactly one of Debit and Credit is non-zero, except for a
// zero net where both are.
type TrialBalanceRow struct {
	AccountNumber string
	AccountName   string
	Class         AccountClass
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Net           decimal.Decimal
	DebitNormal   bool
}

// TrialBalanceClass groups rows of one account class with subtotals.
type TrialBalanceClass struct {
	Class        AccountClass
	Rows         []TrialBalanceRow
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	TotalNet     decimal.Decimal
	AccountCount int
}

// TrialBalance lists every account's net debit or credit balance as of a
// date. An unbalanced trial balance is a valid output: it signals a
// data-integrity issue upstream, so Balanced is reported, never corrected.
type TrialBalance struct {
	AsOf         time.Time
	Classes      []TrialBalanceClass
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	Difference   decimal.Decimal
	Balanced     bool
	ZeroAccounts int
}

// ComposeTrialBalance classifies each balance into the debit or credit
// column from its signed net (positive means debit) and totals per class and
// overall. Accounts with a zero net are omitted from rows but still counted.
func ComposeTrialBalance(balances map[string]AccountBalance, asOf time.Time) TrialBalance {
	classes := make(map[AccountClass]*TrialBalanceClass)
	tb := TrialBalance{AsOf: asOf}

	for _, bal := range balances {
		grp, ok := classes[bal.Class]
		if !ok {
			grp = &TrialBalanceClass{Class: bal.Class}
			classes[bal.Class] = grp
		}
		grp.AccountCount++

		net := bal.Net()
		if net.IsZero() {
			tb.ZeroAccounts++
			continue
		}
		row := TrialBalanceRow{
			AccountNumber: bal.AccountNumber,
			AccountName:   bal.AccountName,
			Class:         bal.Class,
			Net:           net,
			DebitNormal:   bal.NormalSide == SideDebit,
		}
		if net.IsPositive() {
			row.Debit = net
		} else {
			row.Credit = net.Abs()
		}
		grp.Rows = append(grp.Rows, row)
		grp.TotalDebit = grp.TotalDebit.Add(row.Debit)
		grp.TotalCredit = grp.TotalCredit.Add(row.Credit)
		grp.TotalNet = grp.TotalNet.Add(net)
	}

	for _, class := range Classes {
		grp, ok := classes[class]
		if !ok {
			continue
		}
		sort.Slice(grp.Rows, func(i, j int) bool {
			return grp.Rows[i].AccountNumber < grp.Rows[j].AccountNumber
		})
		tb.Classes = append(tb.Classes, *grp)
		tb.TotalDebit = tb.TotalDebit.Add(grp.TotalDebit)
		tb.TotalCredit = tb.TotalCredit.Add(grp.TotalCredit)
	}
	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)
	tb.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb
}
