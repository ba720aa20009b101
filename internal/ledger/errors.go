package ledger

import "errors"

var (
	// ErrEmptyAccountNumber indicates a posting without an account number.
	ErrEmptyAccountNumber = errors.New("ledger: account number is empty")
	// ErrUnknownAccountClass indicates a leading digit outside 1-7.
	ErrUnknownAccountClass = errors.New("ledger: account class outside 1-7")
	// ErrNegativeAmount indicates a posting carrying a negative amount.
	ErrNegativeAmount = errors.New("ledger: posting amount is negative")
	// ErrInvalidSide indicates a posting side other than DEBIT or CREDIT.
	ErrInvalidSide = errors.New("ledger: posting side must be DEBIT or CREDIT")
)

// SkippedPosting records a posting excluded from a report because of a
// data-quality problem. Skips never abort a report; they ride along with the
// result so callers can surface them.
type SkippedPosting struct {
	Posting Posting
	Reason  error
}

func skip(list []SkippedPosting, p Posting, reason error) []SkippedPosting {
	return append(list, SkippedPosting{Posting: p, Reason: reason})
}
