// Package store adapts the ledger store into posting sequences for the
// aggregation engine. It carries no business logic; it only fetches
// validated postings and translates persistence failures.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/kitabu-erp/kitabu/internal/ledger"
)

var (
	// ErrCompanyNotFound indicates the company id has no ledger.
	ErrCompanyNotFound = errors.New("store: company not found")
	// ErrInvalidDateRange indicates from is after to.
	ErrInvalidDateRange = errors.New("store: start date after end date")
)

// CollectorError wraps a fatal ledger-store failure. Unlike data-quality
// skips it always aborts the report that triggered the fetch.
type CollectorError struct {
	Op  string
	Err error
}

func (e *CollectorError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *CollectorError) Unwrap() error {
	return e.Err
}

// Store yields validated postings for a company and date range. An empty
// period returns an empty slice, not an error.
type Store interface {
	ValidatedPostings(ctx context.Context, companyID int64, from, to time.Time) ([]ledger.Posting, error)
}
