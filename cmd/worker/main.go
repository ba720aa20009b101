package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/kitabu-erp/kitabu/internal/app"
	"github.com/kitabu-erp/kitabu/internal/ledger"
	"github.com/kitabu-erp/kitabu/internal/ledger/store"
	"github.com/kitabu-erp/kitabu/internal/platform/cache"
	"github.com/kitabu-erp/kitabu/internal/platform/db"
	"github.com/kitabu-erp/kitabu/internal/reports"
	reportshttp "github.com/kitabu-erp/kitabu/internal/reports/http"
	"github.com/kitabu-erp/kitabu/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	table := ledger.LegacyTable()
	if cfg.StandardEquityConvention {
		table = ledger.StandardTable()
	}

	ledgerStore := store.NewRepository(pool)
	reportsService := reports.NewService(ledgerStore, logger, table)
	responseCache := reportshttp.NewResponseCache(redisClient, cfg.ReportCacheTTL)
	reportsHandler := reportshttp.NewHandler(logger, reportsService, responseCache)

	warmupJob := jobs.NewReportWarmupJob(reportsHandler, pool, logger, nil)

	var cron []jobs.CronRegistration
	if cfg.WarmupCron != "" {
		warmupTask, err := jobs.NewReportWarmupTask(jobs.ReportWarmupPayload{})
		if err != nil {
			logger.Error("build warmup task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.WarmupCron,
			Task:    warmupTask,
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportWarmup, Handler: warmupJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
