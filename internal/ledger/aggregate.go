package ledger

import "github.com/shopspring/decimal"

// AccountBalance models a general ledger account with aggregated balances
// for one run. Balances are derived entirely from the posting sequence
// supplied for that run; the engine keeps no state across calls.
type AccountBalance struct {
	AccountNumber string
	AccountName   string
	Class         AccountClass
	NormalSide    Side
	Opening       decimal.Decimal
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	Closing       decimal.Decimal
	PostingCount  int
}

// Net returns the signed balance where positive means debit column and
// negative means credit column, regardless of the account's normal side.
func (b AccountBalance) Net() decimal.Decimal {
	net := b.TotalDebit.Sub(b.TotalCredit)
	if b.NormalSide == SideDebit {
		return net.Add(b.Opening)
	}
	return net.Sub(b.Opening)
}

// Aggregator folds posting sequences into per-account balances using a fixed
// class table. A zero-value table is not usable; construct with New.
type Aggregator struct {
	table ClassTable
}

// New returns an Aggregator over the given class table.
func New(table ClassTable) *Aggregator {
	return &Aggregator{table: table}
}

// Table exposes the class table the aggregator classifies with.
func (a *Aggregator) Table() ClassTable {
	return a.table
}

// Aggregate sums every account's debit and credit postings and computes the
// closing balance from the account's normal side:
//
//	debit-normal:  closing = opening + totalDebit - totalCredit
//	credit-normal: closing = opening + totalCredit - totalDebit
//
// Opening balances default to zero when absent from opening. Postings that
// fail validation or classification are excluded and reported in the skip
// list without affecting other accounts.
func (a *Aggregator) Aggregate(postings []Posting, opening map[string]decimal.Decimal) (map[string]AccountBalance, []SkippedPosting) {
	balances := make(map[string]AccountBalance)
	var skipped []SkippedPosting

	for _, p := range postings {
		if err := p.Validate(); err != nil {
			skipped = skip(skipped, p, err)
			continue
		}
		class, side, err := a.table.Classify(p.AccountNumber)
		if err != nil {
			skipped = skip(skipped, p, err)
			continue
		}

		bal, ok := balances[p.AccountNumber]
		if !ok {
			bal = AccountBalance{
				AccountNumber: p.AccountNumber,
				AccountName:   p.AccountName,
				Class:         class,
				NormalSide:    side,
			}
			if opening != nil {
				bal.Opening = opening[p.AccountNumber]
			}
		}
		switch p.Side {
		case SideDebit:
			bal.TotalDebit = bal.TotalDebit.Add(p.Amount)
		case SideCredit:
			bal.TotalCredit = bal.TotalCredit.Add(p.Amount)
		}
		bal.PostingCount++
		balances[p.AccountNumber] = bal
	}

	for number, bal := range balances {
		if bal.NormalSide == SideDebit {
			bal.Closing = bal.Opening.Add(bal.TotalDebit).Sub(bal.TotalCredit)
		} else {
			bal.Closing = bal.Opening.Add(bal.TotalCredit).Sub(bal.TotalDebit)
		}
		balances[number] = bal
	}
	return balances, skipped
}
