package usecase

import (
	"context"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// TaskSummaryOutput contains aggregate counts over the task list.
type TaskSummaryOutput struct {
	Summary domain.TaskSummary
}

// TaskSummary is the use case for the task breakdown report.
type TaskSummary struct {
	sched *scheduler.Scheduler
}

// NewTaskSummary creates a new TaskSummary use case.
func NewTaskSummary(sched *scheduler.Scheduler) *TaskSummary {
	return &TaskSummary{sched: sched}
}

// Execute computes the summary.
func (uc *TaskSummary) Execute(_ context.Context) (*TaskSummaryOutput, error) {
	summary, err := uc.sched.Summary()
	if err != nil {
		return nil, err
	}
	return &TaskSummaryOutput{Summary: summary}, nil
}
