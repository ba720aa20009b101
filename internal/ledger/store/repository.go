package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kitabu-erp/kitabu/internal/ledger"
	"github.com/kitabu-erp/kitabu/internal/platform/db"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Store backed by the journal tables.
func NewRepository(pool *pgxpool.Pool) Store {
	return &repository{db: pool}
}

// ValidatedPostings fetches the account entries of validated journal entries
// for the company and period. The company check and the fetch run in one
// repeatable-read transaction so the snapshot is consistent.
func (r *repository) ValidatedPostings(ctx context.Context, companyID int64, from, to time.Time) ([]ledger.Posting, error) {
	if companyID <= 0 {
		return nil, &CollectorError{Op: "validated postings", Err: ErrCompanyNotFound}
	}
	if from.After(to) {
		return nil, &CollectorError{Op: "validated postings", Err: ErrInvalidDateRange}
	}

	var postings []ledger.Posting
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id=$1)`, companyID).Scan(&exists); err != nil {
			return &CollectorError{Op: "check company", Err: err}
		}
		if !exists {
			return &CollectorError{Op: "check company", Err: ErrCompanyNotFound}
		}

		rows, err := tx.Query(ctx, `SELECT ae.journal_entry_id, ae.account_number, ae.account_name, ae.side, ae.amount, ae.created_at, je.company_id
FROM account_entries ae
JOIN journal_entries je ON je.id = ae.journal_entry_id
WHERE je.company_id = $1
  AND je.status = 'VALIDATED'
  AND je.entry_date BETWEEN $2 AND $3
ORDER BY ae.created_at ASC, ae.id ASC`, companyID, from, to)
		if err != nil {
			return &CollectorError{Op: "validated postings", Err: err}
		}
		defer rows.Close()

		for rows.Next() {
			var p ledger.Posting
			var side string
			if err := rows.Scan(&p.JournalEntryID, &p.AccountNumber, &p.AccountName, &side, &p.Amount, &p.CreatedAt, &p.CompanyID); err != nil {
				return &CollectorError{Op: "scan posting", Err: err}
			}
			p.Side = ledger.Side(side)
			postings = append(postings, p)
		}
		if err := rows.Err(); err != nil {
			return &CollectorError{Op: "validated postings", Err: err}
		}
		return nil
	})
	if err != nil {
		var colErr *CollectorError
		if !errors.As(err, &colErr) {
			return nil, &CollectorError{Op: "validated postings", Err: err}
		}
		return nil, err
	}
	return postings, nil
}
