package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

type fakeWarmer struct {
	companies []int64
	err       error
}

func (f *fakeWarmer) WarmCompany(_ context.Context, companyID int64, _ time.Time) error {
	f.companies = append(f.companies, companyID)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReportWarmupHandleSingleCompany(t *testing.T) {
	warmer := &fakeWarmer{}
	job := NewReportWarmupJob(warmer, nil, discardLogger(), nil)

	task, err := NewReportWarmupTask(ReportWarmupPayload{CompanyID: 7})
	if err != nil {
		t.Fatalf("NewReportWarmupTask: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(warmer.companies) != 1 || warmer.companies[0] != 7 {
		t.Fatalf("warmed companies = %v, want [7]", warmer.companies)
	}
}

func TestReportWarmupHandleBadPayload(t *testing.T) {
	job := NewReportWarmupJob(&fakeWarmer{}, nil, discardLogger(), nil)

	task := asynq.NewTask(TaskReportWarmup, []byte("not json"))
	if err := job.Handle(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("Handle error = %v, want SkipRetry", err)
	}
}

func TestReportWarmupHandlePropagatesWarmError(t *testing.T) {
	wantErr := errors.New("warm failed")
	warmer := &fakeWarmer{err: wantErr}
	job := NewReportWarmupJob(warmer, nil, discardLogger(), nil)

	task, err := NewReportWarmupTask(ReportWarmupPayload{CompanyID: 3})
	if err != nil {
		t.Fatalf("NewReportWarmupTask: %v", err)
	}
	if err := job.Handle(context.Background(), task); !errors.Is(err, wantErr) {
		t.Fatalf("Handle error = %v, want %v", err, wantErr)
	}
}
