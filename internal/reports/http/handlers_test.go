package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kitabu-erp/kitabu/internal/ledger"
	"github.com/kitabu-erp/kitabu/internal/ledger/store"
	"github.com/kitabu-erp/kitabu/internal/reports"
)

type stubStore struct {
	postings []ledger.Posting
	err      error
	calls    int
}

func (s *stubStore) ValidatedPostings(ctx context.Context, companyID int64, from, to time.Time) ([]ledger.Posting, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.postings, nil
}

func supplierInvoice() []ledger.Posting {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mk := func(number, name string, side ledger.Side, amount int64) ledger.Posting {
		return ledger.Posting{
			JournalEntryID: uuid.New(),
			AccountNumber:  number,
			AccountName:    name,
			Side:           side,
			Amount:         decimal.NewFromInt(amount),
			CreatedAt:      at,
			CompanyID:      1,
		}
	}
	return []ledger.Posting{
		mk("601", "Purchases", ledger.SideDebit, 100000),
		mk("44566", "Deductible VAT", ledger.SideDebit, 18000),
		mk("401", "Suppliers", ledger.SideCredit, 118000),
	}
}

func newTestHandler(t *testing.T, st store.Store) (*Handler, chi.Router) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResponseCache(client, time.Minute)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := reports.NewService(st, logger, ledger.LegacyTable())
	handler := NewHandler(logger, service, cache)

	router := chi.NewRouter()
	handler.MountRoutes(router)
	return handler, router
}

func TestTrialBalanceEndpoint(t *testing.T) {
	st := &stubStore{postings: supplierInvoice()}
	_, router := newTestHandler(t, st)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?company_id=1&as_of=2026-03-31", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var vm TrialBalanceVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	require.True(t, vm.Balanced)
	require.Equal(t, "118000.00", vm.TotalDebit.Amount)
	require.Equal(t, "118000.00", vm.TotalCredit.Amount)
}

func TestTrialBalanceEndpointCacheHit(t *testing.T) {
	st := &stubStore{postings: supplierInvoice()}
	_, router := newTestHandler(t, st)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?company_id=1&as_of=2026-03-31", nil)
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 1, st.calls, "second request must be served from cache")
}

func TestTrialBalanceEndpointRejectsMissingParams(t *testing.T) {
	_, router := newTestHandler(t, &stubStore{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?company_id=1", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBalanceSheetEndpoint(t *testing.T) {
	st := &stubStore{postings: supplierInvoice()}
	_, router := newTestHandler(t, st)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?company_id=1&as_of=2026-03-31", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var vm BalanceSheetVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	require.Equal(t, "118000.00", vm.CurrentLiabilities.Total.Amount)
	require.Equal(t, "18000.00", vm.CurrentAssets.Total.Amount)
}

func TestIncomeStatementEndpoint(t *testing.T) {
	st := &stubStore{postings: supplierInvoice()}
	_, router := newTestHandler(t, st)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/income-statement?company_id=1&from=2026-01-01&to=2026-03-31", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var vm IncomeStatementVM
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	require.Equal(t, "100000.00", vm.TotalExpense.Amount)
	require.False(t, vm.Profitable)
}

func TestGeneralLedgerEndpointRejectsInvertedRange(t *testing.T) {
	_, router := newTestHandler(t, &stubStore{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/general-ledger?company_id=1&from=2026-03-31&to=2026-01-01", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyNotFoundMapsTo404(t *testing.T) {
	st := &stubStore{err: &store.CollectorError{Op: "check company", Err: store.ErrCompanyNotFound}}
	_, router := newTestHandler(t, st)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?company_id=42&as_of=2026-03-31", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWarmCompanyPrimesCache(t *testing.T) {
	st := &stubStore{postings: supplierInvoice()}
	handler, router := newTestHandler(t, st)

	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	require.NoError(t, handler.WarmCompany(context.Background(), 1, now))
	warmCalls := st.calls

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?company_id=1&as_of=2026-03-15", nil)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, warmCalls, st.calls, "warmed report must come from cache")
}
