// Package http exposes the report engine over a JSON API with a Redis
// response cache in front of it.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/kitabu-erp/kitabu/internal/ledger/store"
	"github.com/kitabu-erp/kitabu/internal/observability"
	"github.com/kitabu-erp/kitabu/internal/platform/httpx"
	"github.com/kitabu-erp/kitabu/internal/reports"
)

// Handler wires the financial report endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *reports.Service
	cache     *ResponseCache
	metrics   *observability.Metrics
	validate  *validator.Validate
	rateLimit func(http.Handler) http.Handler
}

// NewHandler constructs the report handler. cache may be nil, in which case
// every request rebuilds its report.
func NewHandler(logger *slog.Logger, service *reports.Service, cache *ResponseCache) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		cache:     cache,
		validate:  validator.New(),
		rateLimit: httprate.LimitByIP(30, time.Minute),
	}
}

// WithMetrics attaches report-build counters.
func (h *Handler) WithMetrics(m *observability.Metrics) {
	h.metrics = m
}

// MountRoutes registers the report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/reports/general-ledger", h.handleGeneralLedger)
		r.Get("/reports/trial-balance", h.handleTrialBalance)
		r.Get("/reports/balance-sheet", h.handleBalanceSheet)
		r.Get("/reports/income-statement", h.handleIncomeStatement)
		r.Get("/reports/statistics", h.handleStatistics)
	})
}

func (h *Handler) handleGeneralLedger(w http.ResponseWriter, r *http.Request) {
	q, err := parsePeriodQuery(r, h.validate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "company_id, from and to are required; from must not be after to")
		return
	}
	key := cacheKey("gl", q.CompanyID, q.From.Format(dateLayout), q.To.Format(dateLayout))
	h.serveCached(w, r, "general_ledger", key, func(ctx context.Context) ([]byte, error) {
		report, err := h.service.GeneralLedger(ctx, q.CompanyID, q.From, q.To)
		if err != nil {
			return nil, err
		}
		return json.Marshal(GeneralLedgerFromDomain(report))
	})
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	q, err := parseAsOfQuery(r, h.validate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "company_id and as_of are required")
		return
	}
	key := cacheKey("tb", q.CompanyID, q.AsOf.Format(dateLayout))
	h.serveCached(w, r, "trial_balance", key, func(ctx context.Context) ([]byte, error) {
		report, err := h.service.TrialBalance(ctx, q.CompanyID, q.AsOf)
		if err != nil {
			return nil, err
		}
		return json.Marshal(TrialBalanceFromDomain(report))
	})
}

func (h *Handler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	q, err := parseAsOfQuery(r, h.validate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "company_id and as_of are required")
		return
	}
	key := cacheKey("bs", q.CompanyID, q.AsOf.Format(dateLayout))
	h.serveCached(w, r, "balance_sheet", key, func(ctx context.Context) ([]byte, error) {
		report, err := h.service.BalanceSheet(ctx, q.CompanyID, q.AsOf)
		if err != nil {
			return nil, err
		}
		return json.Marshal(BalanceSheetFromDomain(report))
	})
}

func (h *Handler) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	q, err := parsePeriodQuery(r, h.validate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "company_id, from and to are required; from must not be after to")
		return
	}
	key := cacheKey("is", q.CompanyID, q.From.Format(dateLayout), q.To.Format(dateLayout))
	h.serveCached(w, r, "income_statement", key, func(ctx context.Context) ([]byte, error) {
		report, err := h.service.IncomeStatement(ctx, q.CompanyID, q.From, q.To)
		if err != nil {
			return nil, err
		}
		return json.Marshal(IncomeStatementFromDomain(report))
	})
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseCompanyID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", "company_id is required")
		return
	}
	// statistics always reflect "today", so the key rolls daily
	key := cacheKey("stats", companyID, time.Now().UTC().Format(dateLayout))
	h.serveCached(w, r, "statistics", key, func(ctx context.Context) ([]byte, error) {
		report, err := h.service.Statistics(ctx, companyID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(StatisticsFromDomain(report))
	})
}

func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, report, key string, build func(context.Context) ([]byte, error)) {
	ctx := r.Context()
	if payload, ok := h.cache.Get(ctx, key); ok {
		writeJSON(w, payload)
		return
	}
	payload, err := singleflightBuild(ctx, key, build)
	h.metrics.ReportBuilt(report, err)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.cache.Set(ctx, key, payload)
	writeJSON(w, payload)
}

// WarmCompany pre-builds the snapshot reports for a company so the first
// request of the day hits the cache. Used by the background warmup job.
func (h *Handler) WarmCompany(ctx context.Context, companyID int64, now time.Time) error {
	asOf := now.UTC().Truncate(24 * time.Hour)
	builds := map[string]func(context.Context) ([]byte, error){
		cacheKey("tb", companyID, asOf.Format(dateLayout)): func(ctx context.Context) ([]byte, error) {
			report, err := h.service.TrialBalance(ctx, companyID, asOf)
			if err != nil {
				return nil, err
			}
			return json.Marshal(TrialBalanceFromDomain(report))
		},
		cacheKey("bs", companyID, asOf.Format(dateLayout)): func(ctx context.Context) ([]byte, error) {
			report, err := h.service.BalanceSheet(ctx, companyID, asOf)
			if err != nil {
				return nil, err
			}
			return json.Marshal(BalanceSheetFromDomain(report))
		},
		cacheKey("stats", companyID, asOf.Format(dateLayout)): func(ctx context.Context) ([]byte, error) {
			report, err := h.service.Statistics(ctx, companyID)
			if err != nil {
				return nil, err
			}
			return json.Marshal(StatisticsFromDomain(report))
		},
	}
	for key, build := range builds {
		payload, err := build(ctx)
		if err != nil {
			return err
		}
		h.cache.Set(ctx, key, payload)
	}
	return nil
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var colErr *store.CollectorError
	switch {
	case errors.Is(err, store.ErrCompanyNotFound):
		httpx.Problem(w, http.StatusNotFound, "Company Not Found", "no ledger exists for the requested company")
	case errors.Is(err, store.ErrInvalidDateRange):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date Range", "start date is after end date")
	case errors.As(err, &colErr):
		h.logger.Error("ledger store failure", slog.String("path", r.URL.Path), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Ledger Store Unavailable", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpx.Problem(w, http.StatusGatewayTimeout, "Timeout", "")
	default:
		h.logger.Error("build report", slog.String("path", r.URL.Path), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
