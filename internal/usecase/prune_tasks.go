package usecase

import (
	"context"
	"time"

	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// defaultPruneAge keeps a month of finished-task history by default.
const defaultPruneAge = 30 * 24 * time.Hour

// PruneTasksInput contains the parameters for pruning finished tasks.
type PruneTasksInput struct {
	OlderThan time.Duration // Zero uses the 30-day default
}

// PruneTasksOutput contains the result of pruning tasks.
type PruneTasksOutput struct {
	Removed int // Number of tasks removed
}

// PruneTasks is the use case for removing old completed and cancelled
// tasks. Failed tasks are never pruned; they stay visible until acted on.
type PruneTasks struct {
	sched *scheduler.Scheduler
}

// NewPruneTasks creates a new PruneTasks use case.
func NewPruneTasks(sched *scheduler.Scheduler) *PruneTasks {
	return &PruneTasks{sched: sched}
}

// Execute prunes old terminal tasks.
func (uc *PruneTasks) Execute(_ context.Context, in PruneTasksInput) (*PruneTasksOutput, error) {
	age := in.OlderThan
	if age == 0 {
		age = defaultPruneAge
	}
	removed, err := uc.sched.CleanupOld(age)
	if err != nil {
		return nil, err
	}
	return &PruneTasksOutput{Removed: removed}, nil
}
