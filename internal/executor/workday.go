package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// commitLookback is how far back the workday executor scans watched
// branches for fresh commits worth flagging to the reviewer.
const commitLookback = 24 * time.Hour

// Workday is the conservative executor: planning prompts only, limited
// repo set, no code generation.
type Workday struct {
	base
	gateways domain.GatewayFactory
	clock    domain.Clock
	maxRepos int
}

// NewWorkday creates the workday executor.
func NewWorkday(deps Deps) *Workday {
	return &Workday{
		base:     base{session: deps.Session, log: deps.Log},
		gateways: deps.Gateways,
		clock:    deps.Clock,
		maxRepos: deps.Settings.WorkdayMaxRepos,
	}
}

// Execute processes high-priority repos only. Under maximize_usage the
// repo cap is lifted; otherwise the first few high-priority repos are
// enough to conserve session budget.
func (e *Workday) Execute(ctx context.Context, repos []domain.RepoConfig) *Result {
	if e.sessionExpired() {
		e.log.Info("", "workday", "skipping execution, session expired")
		return skippedResult()
	}
	e.logSessionStatus()

	var active []domain.RepoConfig
	for _, repo := range repos {
		if repo.Priority == domain.PriorityHigh {
			active = append(active, repo)
		}
	}
	if !e.maximizeUsage() && len(active) > e.maxRepos {
		active = active[:e.maxRepos]
	}

	results := make(map[string]*RepoResult, len(active))
	for _, repo := range active {
		if ctx.Err() != nil {
			break
		}
		results[repo.Name] = e.safeProcess(repo.Name, func() *RepoResult {
			return e.processRepo(repo)
		})
	}
	return &Result{Status: StatusCompleted, Repos: results}
}

func (e *Workday) processRepo(repo domain.RepoConfig) *RepoResult {
	gw := e.gateways.ForRepo(repo)
	data := gw.GatherWorkdayData()
	now := e.clock.Now()

	var tasks []PlannedTask

	if len(data.PendingReviews) > 0 {
		tasks = append(tasks, PlannedTask{
			Type:   TaskReviewResponses,
			Prompt: reviewPrompt(data.PendingReviews),
		})
	}

	var emptyDescPRs []domain.PullRequest
	for _, pr := range data.MyPRs {
		if strings.TrimSpace(pr.Body) == "" {
			emptyDescPRs = append(emptyDescPRs, pr)
		}
	}
	if len(emptyDescPRs) > 0 {
		tasks = append(tasks, PlannedTask{
			Type:   TaskPRDescriptions,
			Prompt: prDescriptionPrompt(emptyDescPRs),
		})
	}

	if len(data.AssignedIssues) > 0 {
		tasks = append(tasks, PlannedTask{
			Type:   TaskIssueResponses,
			Prompt: issuePrompt(data.AssignedIssues),
		})
	}

	var staleBranches []domain.Branch
	for _, b := range data.Branches {
		if b.NeedsRebase() && !b.Current {
			staleBranches = append(staleBranches, b)
		}
	}
	if len(staleBranches) > 0 {
		tasks = append(tasks, PlannedTask{
			Type:   TaskBranchManagement,
			Prompt: branchStatusPrompt(staleBranches),
		})
	}

	if notices := e.freshCommits(gw, repo, now); len(notices) > 0 {
		tasks = append(tasks, PlannedTask{
			Type:   TaskCommitNotifications,
			Prompt: commitNotificationPrompt(notices),
		})
	}

	if responses := e.commentsNeedingResponse(gw, repo.Name, data.MyPRs); len(responses) > 0 {
		tasks = append(tasks, PlannedTask{
			Type:   TaskCommentResponses,
			Prompt: commentResponsePrompt(responses),
		})
	}

	return &RepoResult{Status: StatusReady, Tasks: tasks}
}

// branchCommits pairs a watched branch with its recent commits.
type branchCommits struct {
	Branch  string
	Commits []domain.Commit
}

func (e *Workday) freshCommits(gw domain.RepoGateway, repo domain.RepoConfig, now time.Time) []branchCommits {
	var notices []branchCommits
	for _, branch := range repo.WatchBranches {
		commits, err := gw.CommitsSince(branch, now.Add(-commitLookback))
		if err != nil {
			e.log.Warn(repo.Name, "workday", fmt.Sprintf("commits on %s: %v", branch, err))
			continue
		}
		if len(commits) > 0 {
			notices = append(notices, branchCommits{Branch: branch, Commits: commits})
		}
	}
	return notices
}

// prComments pairs a PR with the comments on it that look like questions.
type prComments struct {
	PR       domain.PullRequest
	Comments []domain.Comment
}

func (e *Workday) commentsNeedingResponse(gw domain.RepoGateway, repoName string, myPRs []domain.PullRequest) []prComments {
	var needing []prComments
	for _, pr := range myPRs {
		comments, err := gw.PRComments(pr.Number)
		if err != nil {
			e.log.Warn(repoName, "workday", fmt.Sprintf("comments on #%d: %v", pr.Number, err))
			continue
		}
		reviewComments, err := gw.PRReviewComments(pr.Number)
		if err != nil {
			e.log.Warn(repoName, "workday", fmt.Sprintf("review comments on #%d: %v", pr.Number, err))
		}

		var questions []domain.Comment
		for _, c := range append(comments, reviewComments...) {
			// Question mark from someone else is the cheapest signal a
			// reply is expected.
			if c.Author != pr.Author && strings.Contains(c.Body, "?") {
				questions = append(questions, c)
			}
		}
		if len(questions) > 0 {
			needing = append(needing, prComments{PR: pr, Comments: questions})
		}
	}
	return needing
}

// prRef is the compact PR shape embedded into prompts.
type prRef struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
}

func prRefs(prs []domain.PullRequest) string {
	refs := make([]prRef, 0, len(prs))
	for _, pr := range prs {
		refs = append(refs, prRef{Number: pr.Number, Title: pr.Title, Author: pr.Author, URL: pr.URL})
	}
	out, _ := json.MarshalIndent(refs, "", "  ")
	return string(out)
}

func reviewPrompt(prs []domain.PullRequest) string {
	return fmt.Sprintf(`# Workday Mode: PR Review Planning

You are an engineering manager reviewing %d pull requests. For each PR, provide:
1. High-level feedback on the approach
2. Questions for the author (no detailed code review)
3. Suggestions for testing or documentation
4. Approval/changes requested recommendation

IMPORTANT: Provide planning and feedback only. Do not generate code.

PRs to review:
%s

Respond with structured feedback for each PR.
`, len(prs), prRefs(prs))
}

func prDescriptionPrompt(prs []domain.PullRequest) string {
	return fmt.Sprintf(`# Workday Mode: PR Description Updates

%d of your PRs have empty descriptions. Based on the PR titles and any available context,
draft appropriate descriptions that include:
1. What the PR does
2. Why the change is needed
3. Any testing considerations
4. Breaking changes (if any)

PRs needing descriptions:
%s

Provide suggested descriptions for each PR.
`, len(prs), prRefs(prs))
}

func issuePrompt(issues []domain.Issue) string {
	refs := make([]prRef, 0, len(issues))
	for _, issue := range issues {
		refs = append(refs, prRef{Number: issue.Number, Title: issue.Title, Author: issue.Author, URL: issue.URL})
	}
	list, _ := json.MarshalIndent(refs, "", "  ")

	return fmt.Sprintf(`# Workday Mode: Issue Response Planning

You have %d assigned issues. For each issue, provide:
1. Initial analysis of the problem
2. Questions for clarification (if needed)
3. High-level implementation approach
4. Effort estimation
5. Priority recommendation

IMPORTANT: Provide planning only. Do not implement solutions.

Issues assigned:
%s

Respond with structured analysis for each issue.
`, len(issues), string(list))
}

func branchStatusPrompt(branches []domain.Branch) string {
	var list strings.Builder
	for _, b := range branches {
		fmt.Fprintf(&list, "- %s: %d commits behind, last commit: %s\n",
			b.Name, b.Behind, b.LastCommitDate.Format("2006-01-02"))
	}

	return fmt.Sprintf(`# Workday Mode: Branch Status Review

%d branches need attention - they are behind their base branch and may need rebasing.

IMPORTANT: This is workday mode - provide planning and recommendations only. Do not perform actual rebasing operations.

## Branches Behind Base:
%s
## Review Tasks:
For each branch, provide:
1. Risk assessment: how critical is it to update this branch, and what is the impact of delaying?
2. Timing recommendation: worknight, weekend, manual, or urgent?
3. Conflict prediction: which areas are likely to conflict?
4. Action plan: recommended next steps.

Focus on management decisions and risk assessment, not technical implementation.
`, len(branches), list.String())
}

func commitNotificationPrompt(notices []branchCommits) string {
	var list strings.Builder
	for _, n := range notices {
		fmt.Fprintf(&list, "Branch %s (%d new commits):\n", n.Branch, len(n.Commits))
		for i, c := range n.Commits {
			if i == 3 {
				break
			}
			fmt.Fprintf(&list, "  - %s\n", truncate(c.Message, 60))
		}
	}

	return fmt.Sprintf(`# Workday Mode: New Commit Notifications

New commits landed on %d watched branches in the last day. This may affect
reviews you have already given.

## Branches with New Commits:
%s
## Review Impact Assessment:
For each branch, provide:
1. Do these commits address previous review comments, or open new areas?
2. Re-review priority: immediate, today, tomorrow, or next cycle?
3. Action required: update review comments, ask the author, or flag for attention?

Focus on review management and prioritization, not detailed code analysis.
`, len(notices), list.String())
}

func commentResponsePrompt(needing []prComments) string {
	var list strings.Builder
	for _, item := range needing {
		fmt.Fprintf(&list, "PR #%d (%s):\n", item.PR.Number, item.PR.Title)
		for i, c := range item.Comments {
			if i == 2 {
				break
			}
			fmt.Fprintf(&list, "  - %s: %s\n", c.Author, truncate(c.Body, 80))
		}
	}

	return fmt.Sprintf(`# Workday Mode: Conservative Comment Responses

%d of your PRs have comments that appear to be questions or need responses.

IMPORTANT: This is workday mode - provide conservative, professional responses only.
Do not make code changes or detailed technical discussions.

## PRs with Comments Needing Responses:
%s
## Response Guidelines:
For each comment, draft a professional response that acknowledges the
feedback, answers straightforward questions, defers complex technical
discussion to an active development session, and sets expectations for
when changes will land.

Keep responses professional, brief, and focused on communication rather than code changes.
`, len(needing), list.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
