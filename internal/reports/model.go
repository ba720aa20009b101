package reports

import (
	"time"

	"github.com/kitabu-erp/kitabu/internal/ledger"
)

// GeneralLedgerReport is the general ledger for one company and period.
type GeneralLedgerReport struct {
	CompanyID   int64
	From        time.Time
	To          time.Time
	Ledger      ledger.GeneralLedger
	Skipped     []ledger.SkippedPosting
	GeneratedAt time.Time
}

// TrialBalanceReport is the trial balance snapshot as of a date.
type TrialBalanceReport struct {
	CompanyID    int64
	AsOf         time.Time
	TrialBalance ledger.TrialBalance
	Skipped      []ledger.SkippedPosting
	GeneratedAt  time.Time
}

// BalanceSheetReport is the balance sheet derived from the trial balance.
type BalanceSheetReport struct {
	CompanyID    int64
	AsOf         time.Time
	BalanceSheet ledger.BalanceSheet
	Skipped      []ledger.SkippedPosting
	GeneratedAt  time.Time
}

// IncomeStatementReport is the income statement for a period.
type IncomeStatementReport struct {
	CompanyID   int64
	Statement   ledger.IncomeStatement
	Skipped     []ledger.SkippedPosting
	GeneratedAt time.Time
}

// StatisticsReport bundles the snapshots the dashboard consumes.
type StatisticsReport struct {
	CompanyID    int64
	PriorYearEnd TrialBalanceReport
	Current      TrialBalanceReport
	YearToDate   IncomeStatementReport
	GeneratedAt  time.Time
}
