package http

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kitabu-erp/kitabu/internal/ledger"
	"github.com/kitabu-erp/kitabu/internal/reports"
)

// printer localises display amounts; the exact value always travels in
// MoneyVM.Amount.
var printer = message.NewPrinter(language.French)

// MoneyVM carries an exact two-decimal amount plus a grouped display string.
type MoneyVM struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

func money(d decimal.Decimal) MoneyVM {
	return MoneyVM{
		Amount:  d.StringFixed(2),
		Display: printer.Sprintf("%.2f", d.InexactFloat64()),
	}
}

// SkippedVM reports one excluded posting.
type SkippedVM struct {
	JournalEntryID string `json:"journal_entry_id"`
	AccountNumber  string `json:"account_number"`
	Reason         string `json:"reason"`
}

func skippedVM(skipped []ledger.SkippedPosting) []SkippedVM {
	out := make([]SkippedVM, 0, len(skipped))
	for _, s := range skipped {
		out = append(out, SkippedVM{
			JournalEntryID: s.Posting.JournalEntryID.String(),
			AccountNumber:  s.Posting.AccountNumber,
			Reason:         s.Reason.Error(),
		})
	}
	return out
}

// TrialBalanceRowVM is one trial balance row.
type TrialBalanceRowVM struct {
	AccountNumber string  `json:"account_number"`
	AccountName   string  `json:"account_name"`
	Debit         MoneyVM `json:"debit"`
	Credit        MoneyVM `json:"credit"`
	Net           MoneyVM `json:"net"`
	DebitNormal   bool    `json:"debit_normal"`
}

// TrialBalanceClassVM groups rows of one class with subtotals.
type TrialBalanceClassVM struct {
	Class        string              `json:"class"`
	Label        string              `json:"label"`
	Rows         []TrialBalanceRowVM `json:"rows"`
	TotalDebit   MoneyVM             `json:"total_debit"`
	TotalCredit  MoneyVM             `json:"total_credit"`
	AccountCount int                 `json:"account_count"`
}

// TrialBalanceVM is the JSON shape of the trial balance report.
type TrialBalanceVM struct {
	CompanyID    int64                 `json:"company_id"`
	AsOf         string                `json:"as_of"`
	Classes      []TrialBalanceClassVM `json:"classes"`
	TotalDebit   MoneyVM               `json:"total_debit"`
	TotalCredit  MoneyVM               `json:"total_credit"`
	Difference   MoneyVM               `json:"difference"`
	Balanced     bool                  `json:"balanced"`
	ZeroAccounts int                   `json:"zero_accounts"`
	Skipped      []SkippedVM           `json:"skipped"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// TrialBalanceFromDomain maps the service result into the view model.
func TrialBalanceFromDomain(report reports.TrialBalanceReport) TrialBalanceVM {
	vm := TrialBalanceVM{
		CompanyID:    report.CompanyID,
		AsOf:         report.AsOf.Format(dateLayout),
		TotalDebit:   money(report.TrialBalance.TotalDebit),
		TotalCredit:  money(report.TrialBalance.TotalCredit),
		Difference:   money(report.TrialBalance.Difference),
		Balanced:     report.TrialBalance.Balanced,
		ZeroAccounts: report.TrialBalance.ZeroAccounts,
		Skipped:      skippedVM(report.Skipped),
		GeneratedAt:  report.GeneratedAt,
	}
	for _, grp := range report.TrialBalance.Classes {
		classVM := TrialBalanceClassVM{
			Class:        grp.Class.String(),
			Label:        grp.Class.Label(),
			TotalDebit:   money(grp.TotalDebit),
			TotalCredit:  money(grp.TotalCredit),
			AccountCount: grp.AccountCount,
		}
		for _, row := range grp.Rows {
			classVM.Rows = append(classVM.Rows, TrialBalanceRowVM{
				AccountNumber: row.AccountNumber,
				AccountName:   row.AccountName,
				Debit:         money(row.Debit),
				Credit:        money(row.Credit),
				Net:           money(row.Net),
				DebitNormal:   row.DebitNormal,
			})
		}
		vm.Classes = append(vm.Classes, classVM)
	}
	return vm
}

// LedgerEntryVM is one ledger line with its running balance.
type LedgerEntryVM struct {
	JournalEntryID string    `json:"journal_entry_id"`
	Side           string    `json:"side"`
	Amount         MoneyVM   `json:"amount"`
	Running        MoneyVM   `json:"running_balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// LedgerAccountVM is the chronological detail of one account.
type LedgerAccountVM struct {
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Class         string          `json:"class"`
	NormalSide    string          `json:"normal_side"`
	Opening       MoneyVM         `json:"opening"`
	TotalDebit    MoneyVM         `json:"total_debit"`
	TotalCredit   MoneyVM         `json:"total_credit"`
	Closing       MoneyVM         `json:"closing"`
	Entries       []LedgerEntryVM `json:"entries"`
}

// GeneralLedgerVM is the JSON shape of the general ledger report.
type GeneralLedgerVM struct {
	CompanyID     int64                        `json:"company_id"`
	From          string                       `json:"from"`
	To            string                       `json:"to"`
	ByClass       map[string][]LedgerAccountVM `json:"accounts_by_class"`
	TotalAccounts int                          `json:"total_accounts"`
	TotalEntries  int                          `json:"total_entries"`
	Skipped       []SkippedVM                  `json:"skipped"`
	GeneratedAt   time.Time                    `json:"generated_at"`
}

// GeneralLedgerFromDomain maps the service result into the view model.
func GeneralLedgerFromDomain(report reports.GeneralLedgerReport) GeneralLedgerVM {
	vm := GeneralLedgerVM{
		CompanyID:     report.CompanyID,
		From:          report.From.Format(dateLayout),
		To:            report.To.Format(dateLayout),
		ByClass:       make(map[string][]LedgerAccountVM),
		TotalAccounts: report.Ledger.TotalAccounts,
		TotalEntries:  report.Ledger.TotalEntries,
		Skipped:       skippedVM(report.Skipped),
		GeneratedAt:   report.GeneratedAt,
	}
	for class, accounts := range report.Ledger.AccountsByClass {
		for _, account := range accounts {
			accountVM := LedgerAccountVM{
				AccountNumber: account.AccountNumber,
				AccountName:   account.AccountName,
				Class:         account.Class.String(),
				NormalSide:    string(account.NormalSide),
				Opening:       money(account.Opening),
				TotalDebit:    money(account.TotalDebit),
				TotalCredit:   money(account.TotalCredit),
				Closing:       money(account.Closing),
			}
			for _, entry := range account.Entries {
				accountVM.Entries = append(accountVM.Entries, LedgerEntryVM{
					JournalEntryID: entry.JournalEntryID.String(),
					Side:           string(entry.Side),
					Amount:         money(entry.Amount),
					Running:        money(entry.Running),
					CreatedAt:      entry.CreatedAt,
				})
			}
			vm.ByClass[class.String()] = append(vm.ByClass[class.String()], accountVM)
		}
	}
	return vm
}

// BucketVM is one balance sheet section.
type BucketVM struct {
	Label string             `json:"label"`
	Lines map[string]MoneyVM `json:"lines"`
	Total MoneyVM            `json:"total"`
}

func bucketVM(b ledger.BalanceSheetBucket) BucketVM {
	vm := BucketVM{Label: b.Label, Lines: make(map[string]MoneyVM, len(b.Lines)), Total: money(b.Total)}
	for label, amount := range b.Lines {
		vm.Lines[label] = money(amount)
	}
	return vm
}

// BalanceSheetVM is the JSON shape of the balance sheet report.
type BalanceSheetVM struct {
	CompanyID int64  `json:"company_id"`
	AsOf      string `json:"as_of"`

	FixedAssets          BucketVM `json:"fixed_assets"`
	CurrentAssets        BucketVM `json:"current_assets"`
	CashAssets           BucketVM `json:"cash_assets"`
	Equity               BucketVM `json:"equity"`
	FinancialLiabilities BucketVM `json:"financial_liabilities"`
	CurrentLiabilities   BucketVM `json:"current_liabilities"`
	CashLiabilities      BucketVM `json:"cash_liabilities"`

	TotalAssets               MoneyVM     `json:"total_assets"`
	TotalLiabilitiesAndEquity MoneyVM     `json:"total_liabilities_and_equity"`
	Balanced                  bool        `json:"balanced"`
	Skipped                   []SkippedVM `json:"skipped"`
	GeneratedAt               time.Time   `json:"generated_at"`
}

// BalanceSheetFromDomain maps the service result into the view model.
func BalanceSheetFromDomain(report reports.BalanceSheetReport) BalanceSheetVM {
	bs := report.BalanceSheet
	return BalanceSheetVM{
		CompanyID:                 report.CompanyID,
		AsOf:                      report.AsOf.Format(dateLayout),
		FixedAssets:               bucketVM(bs.FixedAssets),
		CurrentAssets:             bucketVM(bs.CurrentAssets),
		CashAssets:                bucketVM(bs.CashAssets),
		Equity:                    bucketVM(bs.Equity),
		FinancialLiabilities:      bucketVM(bs.FinancialLiabilities),
		CurrentLiabilities:        bucketVM(bs.CurrentLiabilities),
		CashLiabilities:           bucketVM(bs.CashLiabilities),
		TotalAssets:               money(bs.TotalAssets),
		TotalLiabilitiesAndEquity: money(bs.TotalLiabilitiesAndEquity),
		Balanced:                  bs.Balanced,
		Skipped:                   skippedVM(report.Skipped),
		GeneratedAt:               report.GeneratedAt,
	}
}

// IncomeLineVM is one named revenue or expense line.
type IncomeLineVM struct {
	Name   string  `json:"name"`
	Amount MoneyVM `json:"amount"`
}

// IncomeStatementVM is the JSON shape of the income statement report.
type IncomeStatementVM struct {
	CompanyID    int64          `json:"company_id"`
	From         string         `json:"from"`
	To           string         `json:"to"`
	Revenue      []IncomeLineVM `json:"revenue"`
	Expense      []IncomeLineVM `json:"expense"`
	TotalRevenue MoneyVM        `json:"total_revenue"`
	TotalExpense MoneyVM        `json:"total_expense"`
	NetResult    MoneyVM        `json:"net_result"`
	Profitable   bool           `json:"profitable"`
	Skipped      []SkippedVM    `json:"skipped"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

func incomeLines(in map[string]decimal.Decimal) []IncomeLineVM {
	out := make([]IncomeLineVM, 0, len(in))
	for name, amount := range in {
		out = append(out, IncomeLineVM{Name: name, Amount: money(amount)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IncomeStatementFromDomain maps the service result into the view model.
func IncomeStatementFromDomain(report reports.IncomeStatementReport) IncomeStatementVM {
	is := report.Statement
	return IncomeStatementVM{
		CompanyID:    report.CompanyID,
		From:         is.From.Format(dateLayout),
		To:           is.To.Format(dateLayout),
		Revenue:      incomeLines(is.Revenue),
		Expense:      incomeLines(is.Expense),
		TotalRevenue: money(is.TotalRevenue),
		TotalExpense: money(is.TotalExpense),
		NetResult:    money(is.NetResult),
		Profitable:   is.Profitable,
		Skipped:      skippedVM(report.Skipped),
		GeneratedAt:  report.GeneratedAt,
	}
}

// StatisticsVM bundles the dashboard snapshots.
type StatisticsVM struct {
	CompanyID    int64             `json:"company_id"`
	PriorYearEnd TrialBalanceVM    `json:"prior_year_end_balance"`
	Current      TrialBalanceVM    `json:"current_balance"`
	YearToDate   IncomeStatementVM `json:"year_to_date_income"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// StatisticsFromDomain maps the service result into the view model.
func StatisticsFromDomain(report reports.StatisticsReport) StatisticsVM {
	return StatisticsVM{
		CompanyID:    report.CompanyID,
		PriorYearEnd: TrialBalanceFromDomain(report.PriorYearEnd),
		Current:      TrialBalanceFromDomain(report.Current),
		YearToDate:   IncomeStatementFromDomain(report.YearToDate),
		GeneratedAt:  report.GeneratedAt,
	}
}
