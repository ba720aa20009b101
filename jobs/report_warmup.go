package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/kitabu-erp/kitabu/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// Warmer pre-builds the cached reports for a single company.
type Warmer interface {
	WarmCompany(ctx context.Context, companyID int64, now time.Time) error
}

// ReportWarmupJob pre-populates report caches so the morning's first
// trial-balance and balance-sheet requests hit Redis instead of Postgres.
type ReportWarmupJob struct {
	Warmer  Warmer
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(warmer Warmer, pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportWarmupJob {
	return &ReportWarmupJob{
		Warmer:  warmer,
		Pool:    pool,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskReportWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Int64("company_id", payload.CompanyID))
	logger.Info("starting report warmup")

	companies, err := j.resolveCompanies(ctx, payload.CompanyID)
	if err != nil {
		resultErr = err
		logger.Error("load warmup companies", slog.Any("error", err))
		return resultErr
	}
	if len(companies) == 0 {
		logger.Info("no companies discovered for warmup")
		return resultErr
	}

	now := j.now()
	warmed := 0
	for _, companyID := range companies {
		if err := j.warmCompany(ctx, companyID, now); err != nil {
			resultErr = err
			logger.Error("warm company", slog.Int64("warm_company_id", companyID), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed report warmup", slog.Int("companies", warmed), slog.Duration("duration", time.Since(now)))
	return resultErr
}

func (j *ReportWarmupJob) warmCompany(ctx context.Context, companyID int64, now time.Time) error {
	if j.Warmer == nil {
		return nil
	}
	// Tighten each company's execution with a timeout to avoid long-running jobs.
	companyCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	return j.Warmer.WarmCompany(companyCtx, companyID, now)
}

func (j *ReportWarmupJob) resolveCompanies(ctx context.Context, companyID int64) ([]int64, error) {
	if companyID > 0 {
		return []int64{companyID}, nil
	}
	if j.Pool == nil {
		return nil, errors.New("report warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT id FROM companies WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		companies = append(companies, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportWarmup))
}

func (j *ReportWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *ReportWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
