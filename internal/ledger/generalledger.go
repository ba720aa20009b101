package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one posting inside a ledger account with the running
// balance after applying it.
type LedgerEntry struct {
	JournalEntryID uuid.UUID
	Side           Side
	Amount         decimal.Decimal
	CreatedAt      time.Time
	Running        decimal.Decimal
}

// LedgerAccount is the chronological detail for a single account.
type LedgerAccount struct {
	AccountNumber string
	AccountName   string
	Class         AccountClass
	NormalSide    Side
	Opening       decimal.Decimal
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	Closing       decimal.Decimal
	Entries       []LedgerEntry
}

// GeneralLedger groups ledger accounts by class for presentation. Grouping
// is a pure re-indexing; it carries no balance semantics.
type GeneralLedger struct {
	AccountsByClass map[AccountClass][]LedgerAccount
	TotalAccounts   int
	TotalEntries    int
}

// BuildGeneralLedger orders each account's postings by creation time (stable,
// ties keep input order), walks them maintaining a running balance with the
// account's normal-side formula, and groups the resulting accounts by class.
// Accounts inside a class are sorted by number.
func (a *Aggregator) BuildGeneralLedger(postings []Posting, opening map[string]decimal.Decimal) (GeneralLedger, []SkippedPosting) {
	byAccount := make(map[string][]Posting)
	order := make([]string, 0)
	var skipped []SkippedPosting

	for _, p := range postings {
		if err := p.Validate(); err != nil {
			skipped = skip(skipped, p, err)
			continue
		}
		if _, _, err := a.table.Classify(p.AccountNumber); err != nil {
			skipped = skip(skipped, p, err)
			continue
		}
		if _, ok := byAccount[p.AccountNumber]; !ok {
			order = append(order, p.AccountNumber)
		}
		byAccount[p.AccountNumber] = append(byAccount[p.AccountNumber], p)
	}

	ledger := GeneralLedger{AccountsByClass: make(map[AccountClass][]LedgerAccount)}
	for _, number := range order {
		group := byAccount[number]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})

		class, side, _ := a.table.Classify(number)
		account := LedgerAccount{
			AccountNumber: number,
			AccountName:   group[0].AccountName,
			Class:         class,
			NormalSide:    side,
		}
		if opening != nil {
			account.Opening = opening[number]
		}

		running := account.Opening
		for _, p := range group {
			if p.Side == SideDebit {
				account.TotalDebit = account.TotalDebit.Add(p.Amount)
			} else {
				account.TotalCredit = account.TotalCredit.Add(p.Amount)
			}
			if (p.Side == SideDebit) == (side == SideDebit) {
				running = running.Add(p.Amount)
			} else {
				running = running.Sub(p.Amount)
			}
			account.Entries = append(account.Entries, LedgerEntry{
				JournalEntryID: p.JournalEntryID,
				Side:           p.Side,
				Amount:         p.Amount,
				CreatedAt:      p.CreatedAt,
				Running:        running,
			})
		}
		account.Closing = running

		ledger.AccountsByClass[class] = append(ledger.AccountsByClass[class], account)
		ledger.TotalAccounts++
		ledger.TotalEntries += len(account.Entries)
	}

	for class := range ledger.AccountsByClass {
		accounts := ledger.AccountsByClass[class]
		sort.Slice(accounts, func(i, j int) bool {
			return accounts[i].AccountNumber < accounts[j].AccountNumber
		})
	}
	return ledger, skipped
}
