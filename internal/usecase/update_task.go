package usecase

import (
	"context"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// UpdateTaskInput contains the parameters for updating a scheduled task.
type UpdateTaskInput struct {
	ID     string            // Task ID (required)
	Status domain.TaskStatus // New status; empty keeps the current one
	Note   string            // Progress note to append (optional)
}

// UpdateTaskOutput contains the task after the update.
type UpdateTaskOutput struct {
	Task domain.ScheduledTask
}

// UpdateTask is the use case for moving a task through its lifecycle and
// recording progress notes.
type UpdateTask struct {
	sched *scheduler.Scheduler
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(sched *scheduler.Scheduler) *UpdateTask {
	return &UpdateTask{sched: sched}
}

// Execute applies the status change and/or note.
func (uc *UpdateTask) Execute(_ context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if in.Status != "" {
		if err := uc.sched.UpdateStatus(in.ID, in.Status, in.Note); err != nil {
			return nil, err
		}
	} else if in.Note != "" {
		if err := uc.sched.AddNote(in.ID, in.Note); err != nil {
			return nil, err
		}
	}

	task, err := uc.sched.Get(in.ID)
	if err != nil {
		return nil, err
	}
	return &UpdateTaskOutput{Task: *task}, nil
}
