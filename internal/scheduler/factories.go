package scheduler

import (
	"fmt"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// Convenience constructors for the task shapes the executors feed back into
// the scheduler. Each one is idempotent per source object: re-observing the
// same PR, branch or issue while an open task for it exists returns that
// task instead of creating a duplicate.

// AddPRImplementation schedules implementation work for review feedback on
// a pull request.
func (s *Scheduler) AddPRImplementation(repoName string, pr domain.PullRequest, due *time.Time) (domain.ScheduledTask, error) {
	if existing, err := s.findOpen(repoName, domain.TaskTypePRImplementation, "pr_number", pr.Number); err != nil {
		return domain.ScheduledTask{}, err
	} else if existing != nil {
		return *existing, nil
	}

	return s.Add(NewTask{
		Title:       fmt.Sprintf("Implement review feedback on PR #%d", pr.Number),
		Description: fmt.Sprintf("Address review comments on %q (%s) and push the fixes.", pr.Title, pr.URL),
		Type:        domain.TaskTypePRImplementation,
		RepoName:    repoName,
		Mode:        domain.TaskModeWorknight,
		Priority:    domain.PriorityHigh,
		DueDate:     due,
		Metadata: map[string]any{
			"pr_number": pr.Number,
			"pr_url":    pr.URL,
		},
	})
}

// AddBranchRebase schedules a rebase for a branch that has fallen behind
// its base.
func (s *Scheduler) AddBranchRebase(repoName string, branch domain.Branch) (domain.ScheduledTask, error) {
	if existing, err := s.findOpen(repoName, domain.TaskTypeBranchRebase, "branch", branch.Name); err != nil {
		return domain.ScheduledTask{}, err
	} else if existing != nil {
		return *existing, nil
	}

	return s.Add(NewTask{
		Title:       fmt.Sprintf("Rebase %s onto its base branch", branch.Name),
		Description: fmt.Sprintf("Branch %s is %d commits behind; rebase and resolve any conflicts.", branch.Name, branch.Behind),
		Type:        domain.TaskTypeBranchRebase,
		RepoName:    repoName,
		Mode:        domain.TaskModeWorknight,
		Priority:    domain.PriorityMedium,
		Metadata: map[string]any{
			"branch": branch.Name,
			"behind": branch.Behind,
		},
	})
}

// AddIssueImplementation schedules implementation work for an assigned issue.
func (s *Scheduler) AddIssueImplementation(repoName string, issue domain.Issue) (domain.ScheduledTask, error) {
	if existing, err := s.findOpen(repoName, domain.TaskTypeIssueImplementation, "issue_number", issue.Number); err != nil {
		return domain.ScheduledTask{}, err
	} else if existing != nil {
		return *existing, nil
	}

	return s.Add(NewTask{
		Title:       fmt.Sprintf("Implement issue #%d: %s", issue.Number, issue.Title),
		Description: fmt.Sprintf("Work the assigned issue %s to a reviewable state.", issue.URL),
		Type:        domain.TaskTypeIssueImplementation,
		RepoName:    repoName,
		Mode:        domain.TaskModeWorknight,
		Priority:    domain.PriorityMedium,
		Metadata: map[string]any{
			"issue_number": issue.Number,
			"issue_url":    issue.URL,
		},
	})
}

// findOpen looks for an open task with the same repo, type and identifying
// metadata value. Metadata round-trips through JSON, so numbers are
// compared by their printed form.
func (s *Scheduler) findOpen(repoName, taskType, metaKey string, metaValue any) (*domain.ScheduledTask, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	want := fmt.Sprint(metaValue)
	for i := range tasks {
		t := &tasks[i]
		if !t.Status.IsOpen() || t.RepoName != repoName || t.Type != taskType {
			continue
		}
		if v, ok := t.Metadata[metaKey]; ok && printedEqual(v, want) {
			return t, nil
		}
	}
	return nil, nil
}

func printedEqual(v any, want string) bool {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprint(int64(f)) == want
	}
	return fmt.Sprint(v) == want
}
