// Package scheduler manages durable cross-cycle tasks.
package scheduler

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// NewTask is the input for creating a scheduled task. ID, status and
// creation time are assigned by the scheduler.
// Fields are ordered to minimize memory padding.
type NewTask struct {
	DueDate              *time.Time
	Metadata             map[string]any
	Title                string
	Description          string
	Type                 string
	RepoName             string
	Mode                 string
	Priority             domain.Priority
	Dependencies         []string
	EstimatedEffortHours float64
}

// Scheduler owns the persisted task list. All mutations go through it;
// every operation loads the full document, mutates and saves.
type Scheduler struct {
	store domain.TaskStore
	clock domain.Clock
}

// New creates a Scheduler over the given store.
func New(store domain.TaskStore, clock domain.Clock) *Scheduler {
	return &Scheduler{store: store, clock: clock}
}

// Add validates and persists a new task, returning it with its assigned ID.
// An empty priority defaults to medium, an empty mode to worknight, and a
// zero effort to one hour.
func (s *Scheduler) Add(in NewTask) (domain.ScheduledTask, error) {
	if in.Title == "" {
		return domain.ScheduledTask{}, domain.ErrEmptyTitle
	}
	if in.RepoName == "" {
		return domain.ScheduledTask{}, domain.ErrEmptyRepoName
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if in.Mode == "" {
		in.Mode = domain.TaskModeWorknight
	}
	if in.EstimatedEffortHours == 0 {
		in.EstimatedEffortHours = 1
	}
	if !in.Priority.IsValid() {
		return domain.ScheduledTask{}, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, in.Priority)
	}

	tasks, err := s.store.Load()
	if err != nil {
		return domain.ScheduledTask{}, err
	}

	now := s.clock.Now()
	task := domain.ScheduledTask{
		ID:                   domain.NewTaskID(in.RepoName, in.Type, now),
		Title:                in.Title,
		Description:          in.Description,
		Type:                 in.Type,
		RepoName:             in.RepoName,
		AssignedToMode:       in.Mode,
		Priority:             in.Priority,
		Status:               domain.TaskPending,
		CreatedAt:            now,
		DueDate:              in.DueDate,
		Dependencies:         in.Dependencies,
		EstimatedEffortHours: in.EstimatedEffortHours,
		Metadata:             in.Metadata,
	}
	if task.Metadata == nil {
		task.Metadata = map[string]any{}
	}

	tasks = append(tasks, task)
	if err := s.store.Save(tasks, now); err != nil {
		return domain.ScheduledTask{}, err
	}
	return task, nil
}

// All returns every task in the store.
func (s *Scheduler) All() ([]domain.ScheduledTask, error) {
	return s.store.Load()
}

// Get returns a task by ID.
func (s *Scheduler) Get(id string) (*domain.ScheduledTask, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
}

// TasksForMode returns open tasks assigned to a mode, optionally scoped to
// one repo, ordered by schedule rank then creation time. A limit of 0 or
// less returns all matches.
func (s *Scheduler) TasksForMode(mode, repoName string, limit int) ([]domain.ScheduledTask, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var matched []domain.ScheduledTask
	for _, t := range tasks {
		if !t.Status.IsOpen() || t.AssignedToMode != mode {
			continue
		}
		if repoName != "" && t.RepoName != repoName {
			continue
		}
		matched = append(matched, t)
	}

	sortTasks(matched, now)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// UpdateStatus transitions a task to a new status, optionally appending a
// progress note.
func (s *Scheduler) UpdateStatus(id string, status domain.TaskStatus, note string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.mutate(id, func(t *domain.ScheduledTask, now time.Time) {
		t.Status = status
		if note != "" {
			t.AddNote(now, note)
		}
	})
}

// AddNote appends a timestamped progress note to a task.
func (s *Scheduler) AddNote(id, note string) error {
	return s.mutate(id, func(t *domain.ScheduledTask, now time.Time) {
		t.AddNote(now, note)
	})
}

// Complete marks a task completed.
func (s *Scheduler) Complete(id, note string) error {
	return s.UpdateStatus(id, domain.TaskCompleted, note)
}

// Fail marks a task failed.
func (s *Scheduler) Fail(id, note string) error {
	return s.UpdateStatus(id, domain.TaskFailed, note)
}

// CanStart reports whether all of a task's dependencies are completed.
// Fail-closed: a dependency ID that does not resolve to a known task blocks
// the dependent rather than silently unblocking it.
func (s *Scheduler) CanStart(id string) (bool, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return false, err
	}

	byID := make(map[string]*domain.ScheduledTask, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	task, ok := byID[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}

	for _, dep := range task.Dependencies {
		depTask, ok := byID[dep]
		if !ok || depTask.Status != domain.TaskCompleted {
			return false, nil
		}
	}
	return true, nil
}

// CleanupOld removes completed and cancelled tasks created before the
// cutoff and returns how many were dropped. Failed and open tasks are
// never cleaned.
func (s *Scheduler) CleanupOld(olderThan time.Duration) (int, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	cutoff := now.Add(-olderThan)
	kept := tasks[:0]
	removed := 0
	for _, t := range tasks {
		if t.Status.IsTerminal() && t.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, t)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := s.store.Save(kept, now); err != nil {
		return 0, err
	}
	return removed, nil
}

// Summary aggregates counts over the whole task list.
func (s *Scheduler) Summary() (domain.TaskSummary, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return domain.TaskSummary{}, err
	}

	now := s.clock.Now()
	summary := domain.TaskSummary{
		ByStatus:   map[domain.TaskStatus]int{},
		ByPriority: map[domain.Priority]int{},
		ByMode:     map[string]int{},
		Total:      len(tasks),
	}
	for _, t := range tasks {
		summary.ByStatus[t.Status]++
		summary.ByPriority[t.Priority]++
		summary.ByMode[t.AssignedToMode]++
		if t.IsOverdue(now) {
			summary.Overdue++
		}
	}
	return summary, nil
}

// mutate applies fn to the task with the given ID and saves the document.
func (s *Scheduler) mutate(id string, fn func(*domain.ScheduledTask, time.Time)) error {
	tasks, err := s.store.Load()
	if err != nil {
		return err
	}

	now := s.clock.Now()
	for i := range tasks {
		if tasks[i].ID == id {
			fn(&tasks[i], now)
			return s.store.Save(tasks, now)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
}

// sortTasks orders tasks by (schedule rank, creation time) ascending.
func sortTasks(tasks []domain.ScheduledTask, now time.Time) {
	slices.SortStableFunc(tasks, func(a, b domain.ScheduledTask) int {
		if c := cmp.Compare(a.ScheduleRank(now), b.ScheduleRank(now)); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
