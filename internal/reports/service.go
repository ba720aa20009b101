// Package reports turns validated posting streams into the general ledger,
// trial balance, balance sheet, and income statement for one company.
package reports

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kitabu-erp/kitabu/internal/ledger"
	"github.com/kitabu-erp/kitabu/internal/ledger/store"
)

// trialBalanceEpoch is the earliest date postings are collected from when
// composing an as-of snapshot.
var trialBalanceEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Service orchestrates report generation. Each call allocates its own
// working maps, so concurrent requests need no coordination; callers wanting
// deduplication add their own caching layer.
type Service struct {
	store  store.Store
	logger *slog.Logger
	agg    *ledger.Aggregator
	now    func() time.Time
}

// NewService constructs a report service over the given posting store and
// class table.
func NewService(st store.Store, logger *slog.Logger, table ledger.ClassTable) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		logger: logger,
		agg:    ledger.New(table),
		now:    time.Now,
	}
}

// WithClock overrides the clock for deterministic tests.
func (s *Service) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// GeneralLedger builds the per-account chronological detail with running
// balances for the period.
func (s *Service) GeneralLedger(ctx context.Context, companyID int64, from, to time.Time) (GeneralLedgerReport, error) {
	if s == nil || s.store == nil {
		return GeneralLedgerReport{}, errors.New("reports: service not initialised")
	}
	postings, err := s.store.ValidatedPostings(ctx, companyID, from, to)
	if err != nil {
		return GeneralLedgerReport{}, err
	}
	gl, skipped := s.agg.BuildGeneralLedger(postings, nil)
	s.logSkips(ctx, "general_ledger", companyID, skipped)
	return GeneralLedgerReport{
		CompanyID:   companyID,
		From:        from,
		To:          to,
		Ledger:      gl,
		Skipped:     skipped,
		GeneratedAt: s.now(),
	}, nil
}

// TrialBalance composes the balance snapshot as of a date. Postings are
// collected from the epoch so the snapshot covers the company's whole
// history.
func (s *Service) TrialBalance(ctx context.Context, companyID int64, asOf time.Time) (TrialBalanceReport, error) {
	if s == nil || s.store == nil {
		return TrialBalanceReport{}, errors.New("reports: service not initialised")
	}
	postings, err := s.store.ValidatedPostings(ctx, companyID, trialBalanceEpoch, asOf)
	if err != nil {
		return TrialBalanceReport{}, err
	}
	balances, skipped := s.agg.Aggregate(postings, nil)
	s.logSkips(ctx, "trial_balance", companyID, skipped)
	return TrialBalanceReport{
		CompanyID:    companyID,
		AsOf:         asOf,
		TrialBalance: ledger.ComposeTrialBalance(balances, asOf),
		Skipped:      skipped,
		GeneratedAt:  s.now(),
	}, nil
}

// BalanceSheet derives the balance sheet from the trial balance as of a
// date.
func (s *Service) BalanceSheet(ctx context.Context, companyID int64, asOf time.Time) (BalanceSheetReport, error) {
	tb, err := s.TrialBalance(ctx, companyID, asOf)
	if err != nil {
		return BalanceSheetReport{}, err
	}
	return BalanceSheetReport{
		CompanyID:    companyID,
		AsOf:         asOf,
		BalanceSheet: ledger.DeriveBalanceSheet(tb.TrialBalance),
		Skipped:      tb.Skipped,
		GeneratedAt:  s.now(),
	}, nil
}

// IncomeStatement reports class 6/7 activity over the period.
func (s *Service) IncomeStatement(ctx context.Context, companyID int64, from, to time.Time) (IncomeStatementReport, error) {
	if s == nil || s.store == nil {
		return IncomeStatementReport{}, errors.New("reports: service not initialised")
	}
	postings, err := s.store.ValidatedPostings(ctx, companyID, from, to)
	if err != nil {
		return IncomeStatementReport{}, err
	}
	is, skipped := s.agg.DeriveIncomeStatement(postings, from, to)
	s.logSkips(ctx, "income_statement", companyID, skipped)
	return IncomeStatementReport{
		CompanyID:   companyID,
		Statement:   is,
		Skipped:     skipped,
		GeneratedAt: s.now(),
	}, nil
}

// Statistics bundles the prior-year-end trial balance, the current trial
// balance, and the year-to-date income statement.
func (s *Service) Statistics(ctx context.Context, companyID int64) (StatisticsReport, error) {
	today := s.now()
	priorYearEnd := time.Date(today.Year()-1, 12, 31, 0, 0, 0, 0, time.UTC)
	startOfYear := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	prior, err := s.TrialBalance(ctx, companyID, priorYearEnd)
	if err != nil {
		return StatisticsReport{}, err
	}
	current, err := s.TrialBalance(ctx, companyID, today)
	if err != nil {
		return StatisticsReport{}, err
	}
	ytd, err := s.IncomeStatement(ctx, companyID, startOfYear, today)
	if err != nil {
		return StatisticsReport{}, err
	}
	return StatisticsReport{
		CompanyID:    companyID,
		PriorYearEnd: prior,
		Current:      current,
		YearToDate:   ytd,
		GeneratedAt:  s.now(),
	}, nil
}

func (s *Service) logSkips(ctx context.Context, report string, companyID int64, skipped []ledger.SkippedPosting) {
	if len(skipped) == 0 {
		return
	}
	s.logger.WarnContext(ctx, "postings skipped during report build",
		slog.String("report", report),
		slog.Int64("company_id", companyID),
		slog.Int("skipped", len(skipped)),
	)
}
