package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kitabu-erp/kitabu/internal/ledger"
	"github.com/kitabu-erp/kitabu/internal/ledger/store"
)

type fakeStore struct {
	postings []ledger.Posting
	err      error

	lastCompanyID int64
	lastFrom      time.Time
	lastTo        time.Time
	calls         int
}

func (f *fakeStore) ValidatedPostings(ctx context.Context, companyID int64, from, to time.Time) ([]ledger.Posting, error) {
	f.calls++
	f.lastCompanyID = companyID
	f.lastFrom = from
	f.lastTo = to
	if f.err != nil {
		return nil, f.err
	}
	return f.postings, nil
}

func fixtureAt(at time.Time) []ledger.Posting {
	mk := func(number, name string, side ledger.Side, amount int64) ledger.Posting {
		return ledger.Posting{
			JournalEntryID: uuid.New(),
			AccountNumber:  number,
			AccountName:    name,
			Side:           side,
			Amount:         decimal.NewFromInt(amount),
			CreatedAt:      at,
			CompanyID:      7,
		}
	}
	return []ledger.Posting{
		mk("601", "Purchases", ledger.SideDebit, 100000),
		mk("44566", "Deductible VAT", ledger.SideDebit, 18000),
		mk("401", "Suppliers", ledger.SideCredit, 118000),
	}
}

func newTestService(st store.Store) *Service {
	svc := NewService(st, nil, ledger.LegacyTable())
	svc.WithClock(func() time.Time {
		return time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

func TestTrialBalanceCollectsFromEpoch(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	st := &fakeStore{postings: fixtureAt(asOf)}
	svc := newTestService(st)

	report, err := svc.TrialBalance(context.Background(), 7, asOf)
	require.NoError(t, err)
	require.Equal(t, int64(7), st.lastCompanyID)
	require.Equal(t, 1900, st.lastFrom.Year())
	require.Equal(t, asOf, st.lastTo)
	require.True(t, report.TrialBalance.Balanced)
	require.Empty(t, report.Skipped)
	require.False(t, report.GeneratedAt.IsZero())
}

func TestGeneralLedgerPropagatesCollectorError(t *testing.T) {
	boom := &store.CollectorError{Op: "validated postings", Err: store.ErrCompanyNotFound}
	svc := newTestService(&fakeStore{err: boom})

	_, err := svc.GeneralLedger(context.Background(), 99, time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)
	require.True(t, errors.Is(err, store.ErrCompanyNotFound))
	var colErr *store.CollectorError
	require.True(t, errors.As(err, &colErr))
}

func TestBalanceSheetCarriesSkips(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	postings := fixtureAt(asOf)
	postings = append(postings, ledger.Posting{
		AccountNumber: "",
		AccountName:   "Broken",
		Side:          ledger.SideDebit,
		Amount:        decimal.NewFromInt(1),
		CreatedAt:     asOf,
	})
	svc := newTestService(&fakeStore{postings: postings})

	report, err := svc.BalanceSheet(context.Background(), 7, asOf)
	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	require.True(t, report.BalanceSheet.CurrentLiabilities.Total.Equal(decimal.NewFromInt(118000)))
}

func TestIncomeStatementPeriodPassedThrough(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeStore{postings: fixtureAt(from)})

	report, err := svc.IncomeStatement(context.Background(), 7, from, to)
	require.NoError(t, err)
	require.Equal(t, from, report.Statement.From)
	require.Equal(t, to, report.Statement.To)
	require.True(t, report.Statement.TotalExpense.Equal(decimal.NewFromInt(100000)))
	require.True(t, report.Statement.TotalRevenue.IsZero())
	require.False(t, report.Statement.Profitable)
}

func TestStatisticsBundlesThreeSnapshots(t *testing.T) {
	st := &fakeStore{postings: fixtureAt(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))}
	svc := newTestService(st)

	stats, err := svc.Statistics(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 3, st.calls)
	require.Equal(t, 2025, stats.PriorYearEnd.AsOf.Year())
	require.Equal(t, 12, int(stats.PriorYearEnd.AsOf.Month()))
	require.Equal(t, 2026, stats.Current.AsOf.Year())
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), stats.YearToDate.Statement.From)
}
