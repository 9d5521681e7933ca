package usecase

import (
	"context"
	"fmt"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// ListTasksInput contains the filters for listing scheduled tasks.
type ListTasksInput struct {
	RepoName      string // Empty matches all repos
	Mode          string // Empty matches all modes
	IncludeClosed bool   // If true, completed/failed/cancelled tasks are included
}

// ListTasksOutput contains the matching tasks.
type ListTasksOutput struct {
	Tasks []domain.ScheduledTask
}

// ListTasks is the use case for listing scheduled tasks.
type ListTasks struct {
	sched *scheduler.Scheduler
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(sched *scheduler.Scheduler) *ListTasks {
	return &ListTasks{sched: sched}
}

// Execute lists tasks matching the filters.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.sched.All()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := &ListTasksOutput{Tasks: []domain.ScheduledTask{}}
	for _, task := range tasks {
		if in.RepoName != "" && task.RepoName != in.RepoName {
			continue
		}
		if in.Mode != "" && task.AssignedToMode != in.Mode {
			continue
		}
		if !in.IncludeClosed && !task.Status.IsOpen() {
			continue
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out, nil
}
