package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTaskID(t *testing.T) {
	created := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	id := NewTaskID("api-server", "branch_rebase", created)
	assert.Equal(t, "api-server_branch_rebase_20240315_093045", id)
}

func TestPriority_Rank(t *testing.T) {
	assert.Equal(t, 0, PriorityUrgent.Rank())
	assert.Equal(t, 1, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	// Unknown priorities sort last.
	assert.Equal(t, 3, Priority("bogus").Rank())
}

func TestScheduledTask_DueUrgency(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	due := func(d time.Duration) *time.Time {
		at := now.Add(d)
		return &at
	}

	tests := []struct {
		name string
		due  *time.Time
		want int
	}{
		{"no due date", nil, 0},
		{"overdue", due(-24 * time.Hour), -10},
		{"due in an hour", due(time.Hour), -5},
		{"due tomorrow", due(20 * time.Hour), -5},
		{"due in three days", due(66 * time.Hour), -2},
		{"due next week", due(7 * 24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &ScheduledTask{Priority: PriorityMedium, DueDate: tt.due}
			assert.Equal(t, tt.want, task.DueUrgency(now))
		})
	}
}

func TestScheduledTask_ScheduleRank_OverdueBeatsUrgent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	overdueAt := now.Add(-24 * time.Hour)

	urgent := &ScheduledTask{Priority: PriorityUrgent}
	overdueLow := &ScheduledTask{Priority: PriorityLow, DueDate: &overdueAt}

	assert.Equal(t, 0, urgent.ScheduleRank(now))
	assert.Equal(t, -7, overdueLow.ScheduleRank(now))
	assert.Less(t, overdueLow.ScheduleRank(now), urgent.ScheduleRank(now))
}

func TestScheduledTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&ScheduledTask{Status: TaskPending, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&ScheduledTask{Status: TaskPending, DueDate: &future}).IsOverdue(now))
	assert.False(t, (&ScheduledTask{Status: TaskCompleted, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&ScheduledTask{Status: TaskPending}).IsOverdue(now))
}

func TestTaskStatus_Classification(t *testing.T) {
	assert.True(t, TaskPending.IsOpen())
	assert.True(t, TaskInProgress.IsOpen())
	assert.False(t, TaskCompleted.IsOpen())

	assert.True(t, TaskCompleted.IsTerminal())
	assert.True(t, TaskCancelled.IsTerminal())
	// Failed tasks are not auto-cleaned.
	assert.False(t, TaskFailed.IsTerminal())
	assert.False(t, TaskPending.IsTerminal())
}

func TestScheduledTask_AddNote(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	task := &ScheduledTask{}
	task.AddNote(now, "started investigation")

	assert.Len(t, task.ProgressNotes, 1)
	assert.Equal(t, "2024-03-15T12:00:00Z: started investigation", task.ProgressNotes[0])
}
