// Package executor implements the per-mode repo-selection and prompt
// assembly policies.
package executor

import (
	"context"
	"fmt"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// Result statuses.
const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusReady     = "ready"
	StatusError     = "error"
)

// Workday planning task types.
const (
	TaskReviewResponses     = "review_responses"
	TaskPRDescriptions      = "pr_descriptions"
	TaskIssueResponses      = "issue_responses"
	TaskBranchManagement    = "branch_management"
	TaskCommitNotifications = "commit_notifications"
	TaskCommentResponses    = "comment_responses"
)

// PlannedTask is one workday planning unit: a prompt ready for dispatch.
// Result is filled in after the assistant answers.
type PlannedTask struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
	Result string `json:"result,omitempty"`
}

// RepoResult is the outcome for one repository within a cycle.
type RepoResult struct {
	Status           string        `json:"status"`
	Error            string        `json:"error,omitempty"`
	Prompt           string        `json:"prompt,omitempty"`
	AssistantOutput  string        `json:"assistant_output,omitempty"`
	Tasks            []PlannedTask `json:"tasks,omitempty"`
	ScheduledTaskIDs []string      `json:"scheduled_tasks,omitempty"`
}

// Result is the structured outcome of one executor run. A skipped run
// carries a reason and no repo map; a completed run always carries the
// repo map, even when some repos errored.
type Result struct {
	Repos  map[string]*RepoResult `json:"results,omitempty"`
	Status string                 `json:"status"`
	Reason string                 `json:"reason,omitempty"`
}

// Executor is one work mode's policy object.
type Executor interface {
	Execute(ctx context.Context, repos []domain.RepoConfig) *Result
}

// Deps are the collaborators shared by all executors.
type Deps struct {
	Gateways  domain.GatewayFactory
	Session   domain.SessionMonitor
	Scheduler *scheduler.Scheduler
	Log       domain.Logger
	Clock     domain.Clock
	Settings  domain.Settings
}

// ForMode returns the executor for a work mode. ModeOff has no executor;
// callers gate on ShouldRunAutomation before selecting one.
func ForMode(mode domain.WorkMode, deps Deps) (Executor, error) {
	switch mode {
	case domain.ModeWorkday:
		return NewWorkday(deps), nil
	case domain.ModeWorknight:
		return NewWorknight(deps), nil
	case domain.ModeWeekend:
		return NewWeekend(deps), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWorkMode, mode)
	}
}

// base carries the session gating shared by every executor.
type base struct {
	session domain.SessionMonitor
	log     domain.Logger
}

func (b base) sessionExpired() bool {
	return b.session.CheckStatus() == domain.SessionExpired
}

func (b base) maximizeUsage() bool {
	return b.session.CheckStatus() == domain.SessionMaximize
}

func (b base) logSessionStatus() {
	status := b.session.CheckStatus()
	msg := fmt.Sprintf("session status: %s", status)
	if summary := b.session.Summary(); summary.RemainingMinutes != nil {
		msg = fmt.Sprintf("%s - %d min remaining", msg, *summary.RemainingMinutes)
	}
	b.log.Info("", "session", msg)
}

func skippedResult() *Result {
	return &Result{Status: StatusSkipped, Reason: "session_expired"}
}

// safeProcess runs one repo's processing and converts a panic into that
// repo's error result. One misbehaving repo must not take down the cycle.
func (b base) safeProcess(repoName string, fn func() *RepoResult) (result *RepoResult) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(repoName, "executor", fmt.Sprintf("panic: %v", r))
			result = &RepoResult{Status: StatusError, Error: fmt.Sprintf("panic: %v", r)}
		}
	}()
	return fn()
}
