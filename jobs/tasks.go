package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup is the task type for pre-building report caches.
	TaskReportWarmup = "reports:warmup"
)

// ReportWarmupPayload scopes a warmup run. A zero CompanyID warms every
// active company.
type ReportWarmupPayload struct {
	CompanyID int64 `json:"company_id"`
}

// NewReportWarmupTask constructs an Asynq task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}
