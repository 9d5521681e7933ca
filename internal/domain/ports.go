package domain

import (
	"context"
	"time"
)

// TaskStore persists the scheduler's task list as a single document.
// Load-all/save-all per mutation; the scheduler is the only writer.
type TaskStore interface {
	// Load reads all tasks. A missing store yields an empty list, not an error.
	Load() ([]ScheduledTask, error)

	// Save writes the full task list, replacing the previous document.
	Save(tasks []ScheduledTask, updatedAt time.Time) error
}

// ActivitySource yields timestamped activity records from the assistant's
// logs. Best-effort: unreadable files and malformed lines are skipped.
type ActivitySource interface {
	Records() []ActivityRecord
}

// SessionSummary is the structured session report used for logging and the
// status command. Timing fields are only set while a session is active.
type SessionSummary struct {
	Timestamp        time.Time  `json:"timestamp"`
	SessionStart     *time.Time `json:"session_start,omitempty"`
	ElapsedMinutes   *int       `json:"session_elapsed_minutes,omitempty"`
	RemainingMinutes *int       `json:"session_remaining_minutes,omitempty"`
	IsFinalWindow    *bool      `json:"is_final_window,omitempty"`
	SessionExpired   *bool      `json:"session_expired,omitempty"`
	Active           bool       `json:"session_active"`
}

// SessionMonitor exposes the session tracker to the executors.
type SessionMonitor interface {
	// CheckStatus classifies the current session by timing alone.
	CheckStatus() SessionStatus

	// Summary returns the session report for logging.
	Summary() SessionSummary
}

// RepoGateway gathers and mutates the state of one repository through the
// hosting CLI and local VCS. Constructed per repo via GatewayFactory.
type RepoGateway interface {
	// GatherWorkdayData aggregates PRs, issues and branch state.
	GatherWorkdayData() *RepoData

	// GatherWeekendData aggregates dependency/security files and findings.
	GatherWeekendData() *WeekendData

	// PRComments returns conversation comments on a PR.
	PRComments(number int) ([]Comment, error)

	// PRReviewComments returns inline review comments on a PR.
	PRReviewComments(number int) ([]Comment, error)

	// SearchInvolvedPRs returns open PRs that involve the current user.
	SearchInvolvedPRs() ([]PullRequest, error)

	// CommentOnPR adds a conversation comment to a PR.
	CommentOnPR(number int, body string) error

	// CommentOnIssue adds a comment to an issue.
	CommentOnIssue(number int, body string) error

	// UpdatePRDescription replaces a PR body.
	UpdatePRDescription(number int, body string) error

	// CreatePR opens a pull request and returns its number.
	CreatePR(opts CreatePROptions) (int, error)

	// CommitsSince returns commits on a branch newer than the given time.
	CommitsSince(branch string, since time.Time) ([]Commit, error)

	// RebaseBranch rebases a branch onto origin/<base>; failures are
	// reported in the outcome, not as errors.
	RebaseBranch(branch, base string) RebaseOutcome
}

// GatewayFactory builds a RepoGateway rooted at a repository path.
type GatewayFactory interface {
	ForRepo(repo RepoConfig) RepoGateway
}

// Assistant is the external code-generation assistant. One synchronous
// call per prompt; failures propagate as errors.
type Assistant interface {
	Invoke(ctx context.Context, prompt, workingDir string) (string, error)
}

// ConfigLoader loads the repository list and settings documents.
type ConfigLoader interface {
	// Load never fails hard: missing or malformed documents degrade to
	// defaults, with the problem recorded in Config.Warnings.
	Load() *Config
}

// Logger is the orchestrator's structured log sink.
type Logger interface {
	Debug(repo, category, msg string)
	Info(repo, category, msg string)
	Warn(repo, category, msg string)
	Error(repo, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
