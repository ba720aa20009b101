package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSheetBucket is one named section of the balance sheet. Lines are
// keyed by chart heading; Total is their sum.
type BalanceSheetBucket struct {
	Label string
	Lines map[string]decimal.Decimal
	Total decimal.Decimal
}

func newBucket(label string) BalanceSheetBucket {
	return BalanceSheetBucket{Label: label, Lines: make(map[string]decimal.Decimal)}
}

func (b *BalanceSheetBucket) add(line string, amount decimal.Decimal) {
	b.Lines[line] = b.Lines[line].Add(amount)
	b.Total = b.Total.Add(amount)
}

// BalanceSheet partitions balance-sheet classes (1-5) into the SYSCOHADA
// presentation buckets. Classes 6 and 7 never appear here; they belong to
// the income statement.
type BalanceSheet struct {
	AsOf time.Time

	FixedAssets          BalanceSheetBucket
	CurrentAssets        BalanceSheetBucket
	CashAssets           BalanceSheetBucket
	Equity               BalanceSheetBucket
	FinancialLiabilities BalanceSheetBucket
	CurrentLiabilities   BalanceSheetBucket
	CashLiabilities      BalanceSheetBucket

	TotalAssets               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Balanced                  bool
}

// DeriveBalanceSheet buckets trial balance rows by class. Class 4 rows are
// split per row on the sign of their net (positive is a receivable, negative
// a payable at absolute value), as are class 5 rows for cash positions held
// versus owed. Liability-side buckets carry credit-positive amounts so that
// a balanced books set yields TotalAssets == TotalLiabilitiesAndEquity.
func DeriveBalanceSheet(tb TrialBalance) BalanceSheet {
	bs := BalanceSheet{
		AsOf:                 tb.AsOf,
		FixedAssets:          newBucket("Fixed assets"),
		CurrentAssets:        newBucket("Current assets"),
		CashAssets:           newBucket("Cash and equivalents"),
		Equity:               newBucket("Equity"),
		FinancialLiabilities: newBucket("Financial liabilities"),
		CurrentLiabilities:   newBucket("Current liabilities"),
		CashLiabilities:      newBucket("Cash and equivalents (liabilities)"),
	}

	for _, grp := range tb.Classes {
		for _, row := range grp.Rows {
			switch row.Class {
			case ClassCapital:
				bs.Equity.add(ClassCapital.Label(), row.Net.Neg())
			case ClassFixedAsset:
				bs.FixedAssets.add(ClassFixedAsset.Label(), row.Net)
			case ClassInventory:
				bs.CurrentAssets.add(ClassInventory.Label(), row.Net)
			case ClassThirdParty:
				if row.Net.IsPositive() {
					bs.CurrentAssets.add("Class 4 - Receivables", row.Net)
				} else {
					bs.CurrentLiabilities.add("Class 4 - Payables", row.Net.Abs())
				}
			case ClassFinancial:
				if row.Net.IsNegative() {
					bs.CashLiabilities.add("Class 5 - Overdrafts", row.Net.Abs())
				} else {
					bs.CashAssets.add(ClassFinancial.Label(), row.Net)
				}
			case ClassExpense, ClassRevenue:
				// Result accounts are excluded from the balance sheet.
			}
		}
	}

	bs.TotalAssets = bs.FixedAssets.Total.
		Add(bs.CurrentAssets.Total).
		Add(bs.CashAssets.Total)
	bs.TotalLiabilitiesAndEquity = bs.Equity.Total.
		Add(bs.FinancialLiabilities.Total).
		Add(bs.CurrentLiabilities.Total).
		Add(bs.CashLiabilities.Total)
	bs.Balanced = bs.TotalAssets.Equal(bs.TotalLiabilitiesAndEquity)
	return bs
}

// IncomeStatement reports class 6 and 7 activity over a period. Revenue and
// Expense are keyed by account name; expense figures are positive
// magnitudes.
type IncomeStatement struct {
	From time.Time
	To   time.Time

	Revenue map[string]decimal.Decimal
	Expense map[string]decimal.Decimal

	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetResult    decimal.Decimal
	Profitable   bool
}

// DeriveIncomeStatement restricts postings to classes 6 and 7. A class 6
// debit increases expense and a credit decreases it; a class 7 credit
// increases revenue and a debit decreases it. NetResult is revenue minus
// expense exactly.
func (a *Aggregator) DeriveIncomeStatement(postings []Posting, from, to time.Time) (IncomeStatement, []SkippedPosting) {
	is := IncomeStatement{
		From:    from,
		To:      to,
		Revenue: make(map[string]decimal.Decimal),
		Expense: make(map[string]decimal.Decimal),
	}
	var skipped []SkippedPosting

	for _, p := range postings {
		if err := p.Validate(); err != nil {
			skipped = skip(skipped, p, err)
			continue
		}
		class, _, err := a.table.Classify(p.AccountNumber)
		if err != nil {
			skipped = skip(skipped, p, err)
			continue
		}
		switch class {
		case ClassExpense:
			delta := p.Amount
			if p.Side == SideCredit {
				delta = delta.Neg()
			}
			is.Expense[p.AccountName] = is.Expense[p.AccountName].Add(delta)
			is.TotalExpense = is.TotalExpense.Add(delta)
		case ClassRevenue:
			delta := p.Amount
			if p.Side == SideDebit {
				delta = delta.Neg()
			}
			is.Revenue[p.AccountName] = is.Revenue[p.AccountName].Add(delta)
			is.TotalRevenue = is.TotalRevenue.Add(delta)
		}
	}

	is.NetResult = is.TotalRevenue.Sub(is.TotalExpense)
	is.Profitable = is.NetResult.IsPositive()
	return is, skipped
}
