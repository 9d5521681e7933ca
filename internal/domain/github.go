package domain

import "time"

// PullRequest is the slice of gh output the executors care about.
// Fields are ordered to minimize memory padding.
type PullRequest struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	UpdatedAt string `json:"updatedAt"`
	State     string `json:"state"`
	Body      string `json:"body"`
	Number    int    `json:"number"`
}

// Issue is the slice of gh output the executors care about.
type Issue struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	UpdatedAt string `json:"updatedAt"`
	State     string `json:"state"`
	Body      string `json:"body"`
	Number    int    `json:"number"`
}

// Comment is a PR or issue comment.
type Comment struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// Branch describes a local branch and its position relative to its
// upstream base.
type Branch struct {
	LastCommitDate time.Time
	Name           string
	Remote         string
	LastCommit     string
	Ahead          int
	Behind         int
	Current        bool
}

// NeedsRebase reports whether the branch is behind its base.
func (b Branch) NeedsRebase() bool {
	return b.Behind > 0
}

// CanPush reports whether the branch has local commits to push.
func (b Branch) CanPush() bool {
	return b.Ahead > 0
}

// Commit is a single commit summary.
type Commit struct {
	Date         time.Time
	SHA          string
	Message      string
	Author       string
	URL          string
	FilesChanged []string
}

// RepoFile is a file fetched from the repository via the hosting API.
type RepoFile struct {
	Description string
	Content     string
}

// VulnerabilityReport summarizes the hosting platform's security findings.
type VulnerabilityReport struct {
	Err        string // Non-empty when the check itself failed
	Advisories int
	Alerts     int
}

// TotalIssues returns the combined count of advisories and alerts.
func (v VulnerabilityReport) TotalIssues() int {
	return v.Advisories + v.Alerts
}

// RepoData is the read-only repository state gathered for workday and
// worknight processing.
type RepoData struct {
	PendingReviews []PullRequest
	MyPRs          []PullRequest
	AssignedIssues []Issue
	Branches       []Branch
}

// WeekendData is the wider state gathered for weekend maintenance.
type WeekendData struct {
	DependencyFiles map[string]RepoFile
	SecurityFiles   map[string]RepoFile
	Vulnerabilities VulnerabilityReport
	Branches        []Branch
	MyPRs           []PullRequest
}

// CreatePROptions configures PR creation.
type CreatePROptions struct {
	Title  string
	Body   string
	Branch string
	Base   string
	Draft  bool
}

// RebaseOutcome is the structured result of a rebase attempt. Failures are
// data, not errors: the caller decides what to schedule next.
type RebaseOutcome struct {
	Error        string
	ActionNeeded string // commit_or_stash, manual_resolution, investigate
	Message      string
	Conflicts    []string
	Success      bool
}
