package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side tags a posting as a debit or credit movement.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// Posting is one debit- or credit-tagged monetary movement against a single
// account, belonging to a validated journal entry. Postings are immutable
// facts; signed effects are expressed only through Side, never through a
// negative amount.
type Posting struct {
	JournalEntryID uuid.UUID
	AccountNumber  string
	AccountName    string
	Side           Side
	Amount         decimal.Decimal
	CreatedAt      time.Time
	CompanyID      int64
}

// Validate checks the posting-level invariants.
func (p Posting) Validate() error {
	if p.AccountNumber == "" {
		return ErrEmptyAccountNumber
	}
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if p.Side != SideDebit && p.Side != SideCredit {
		return ErrInvalidSide
	}
	return nil
}
