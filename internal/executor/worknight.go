package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// scheduledTaskCap limits how many scheduled tasks one worknight prompt
// carries. The rest wait for the next cycle.
const scheduledTaskCap = 5

// implementationRequestKeywords mark PRs from others asking for work.
var implementationRequestKeywords = []string{
	"please implement", "can you implement", "need implementation",
	"could you add", "please add", "implement this",
}

// implementationCommentKeywords mark review comments requesting changes.
var implementationCommentKeywords = []string{
	"please change", "needs to be", "should implement", "add this",
	"fix this", "update this", "modify this", "implement",
	"requested changes", "needs implementation",
}

// Worknight is the active executor: all repos, one comprehensive prompt
// per repo authorizing code changes, rebases and PR operations.
type Worknight struct {
	base
	gateways domain.GatewayFactory
	sched    *scheduler.Scheduler
}

// NewWorknight creates the worknight executor.
func NewWorknight(deps Deps) *Worknight {
	return &Worknight{
		base:     base{session: deps.Session, log: deps.Log},
		gateways: deps.Gateways,
		sched:    deps.Scheduler,
	}
}

// Execute processes every repo. A failure inside one repo is recorded as
// that repo's error result; the cycle still completes.
func (e *Worknight) Execute(ctx context.Context, repos []domain.RepoConfig) *Result {
	if e.sessionExpired() {
		e.log.Info("", "worknight", "skipping execution, session expired")
		return skippedResult()
	}
	e.logSessionStatus()

	results := make(map[string]*RepoResult, len(repos))
	for _, repo := range repos {
		if ctx.Err() != nil {
			break
		}
		results[repo.Name] = e.safeProcess(repo.Name, func() *RepoResult {
			return e.processRepo(repo)
		})
	}
	return &Result{Status: StatusCompleted, Repos: results}
}

func (e *Worknight) processRepo(repo domain.RepoConfig) *RepoResult {
	tasks, err := e.sched.TasksForMode(domain.TaskModeWorknight, repo.Name, scheduledTaskCap)
	if err != nil {
		e.log.Error(repo.Name, "worknight", fmt.Sprintf("load scheduled tasks: %v", err))
		return &RepoResult{Status: StatusError, Error: err.Error()}
	}

	gw := e.gateways.ForRepo(repo)
	data := gw.GatherWorkdayData()

	implRequests := e.implementationRequests(gw, repo.Name, data.MyPRs)

	var rebaseNeeded []domain.Branch
	for _, b := range data.Branches {
		if b.NeedsRebase() && !b.Current {
			rebaseNeeded = append(rebaseNeeded, b)
		}
	}

	myImplementations := e.myPRImplementations(gw, repo.Name, data.MyPRs)

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	return &RepoResult{
		Status:           StatusReady,
		Prompt:           worknightPrompt(repo, tasks, implRequests, rebaseNeeded, myImplementations, data),
		ScheduledTaskIDs: ids,
	}
}

// implementationRequests finds open PRs from others whose title or body
// asks the operator to implement something.
func (e *Worknight) implementationRequests(gw domain.RepoGateway, repoName string, myPRs []domain.PullRequest) []domain.PullRequest {
	involved, err := gw.SearchInvolvedPRs()
	if err != nil {
		e.log.Warn(repoName, "worknight", fmt.Sprintf("involved prs: %v", err))
		return nil
	}

	mine := make(map[int]bool, len(myPRs))
	for _, pr := range myPRs {
		mine[pr.Number] = true
	}

	var requests []domain.PullRequest
	for _, pr := range involved {
		if mine[pr.Number] {
			continue
		}
		text := strings.ToLower(pr.Title + " " + pr.Body)
		for _, kw := range implementationRequestKeywords {
			if strings.Contains(text, kw) {
				requests = append(requests, pr)
				break
			}
		}
	}
	return requests
}

// myPRImplementations finds the operator's PRs whose comments request
// code changes, with the matching comment count.
type prImplementation struct {
	PR           domain.PullRequest
	CommentCount int
}

func (e *Worknight) myPRImplementations(gw domain.RepoGateway, repoName string, myPRs []domain.PullRequest) []prImplementation {
	var needed []prImplementation
	for _, pr := range myPRs {
		comments, err := gw.PRComments(pr.Number)
		if err != nil {
			e.log.Warn(repoName, "worknight", fmt.Sprintf("comments on #%d: %v", pr.Number, err))
			continue
		}
		reviewComments, err := gw.PRReviewComments(pr.Number)
		if err != nil {
			e.log.Warn(repoName, "worknight", fmt.Sprintf("review comments on #%d: %v", pr.Number, err))
		}

		count := 0
		for _, c := range append(comments, reviewComments...) {
			body := strings.ToLower(c.Body)
			for _, kw := range implementationCommentKeywords {
				if strings.Contains(body, kw) {
					count++
					break
				}
			}
		}
		if count > 0 {
			needed = append(needed, prImplementation{PR: pr, CommentCount: count})
		}
	}
	return needed
}

func worknightPrompt(
	repo domain.RepoConfig,
	tasks []domain.ScheduledTask,
	implRequests []domain.PullRequest,
	rebaseNeeded []domain.Branch,
	myImplementations []prImplementation,
	data *domain.RepoData,
) string {
	var sections []string

	sections = append(sections, fmt.Sprintf(`# Worknight Mode: Active Development Session

You are working on %s (priority: %s) located at %s.
This is an active development session where you can make code changes, run commands, and implement features.

You have full access to:
- All git commands for branch management
- The gh CLI for GitHub operations
- Development tools in the repository
- Ability to run tests, linters, and build processes`,
		repo.Name, repo.Priority, repo.Path))

	if len(tasks) > 0 {
		var list strings.Builder
		for _, t := range tasks {
			fmt.Fprintf(&list, "  - [%s] %s\n    %s\n", strings.ToUpper(string(t.Priority)), t.Title, t.Description)
		}
		sections = append(sections, fmt.Sprintf(`## Scheduled Tasks (PRIORITY)

You have %d scheduled tasks for this repository. Work on these first:

%s
When you complete a task, make sure to update its status in the task scheduler.`,
			len(tasks), list.String()))
	}

	if len(implRequests) > 0 {
		var list strings.Builder
		for i, pr := range implRequests {
			if i == 3 {
				break
			}
			fmt.Fprintf(&list, "  - PR #%d: %s by %s\n    URL: %s\n", pr.Number, pr.Title, pr.Author, pr.URL)
		}
		sections = append(sections, fmt.Sprintf(`## Implementation Requests from Others

%d PRs from other developers request your implementation work:

%s
For each PR: review the request, implement the functionality, test thoroughly, and comment on the PR with your progress.`,
			len(implRequests), list.String()))
	}

	if len(myImplementations) > 0 {
		var list strings.Builder
		for i, impl := range myImplementations {
			if i == 3 {
				break
			}
			fmt.Fprintf(&list, "  - PR #%d: %s\n    %d implementation comments to address\n    URL: %s\n",
				impl.PR.Number, impl.PR.Title, impl.CommentCount, impl.PR.URL)
		}
		sections = append(sections, fmt.Sprintf(`## My PRs Needing Implementation

%d of your PRs have review comments requesting implementation changes:

%s
For each PR: read all review comments, implement the requested changes, run tests, respond to reviewers, and push.`,
			len(myImplementations), list.String()))
	}

	if len(rebaseNeeded) > 0 {
		var list strings.Builder
		for i, b := range rebaseNeeded {
			if i == 5 {
				break
			}
			fmt.Fprintf(&list, "  - %s: %d commits behind\n", b.Name, b.Behind)
		}
		sections = append(sections, fmt.Sprintf(`## Branch Management

%d branches need rebasing:

%s
For each branch: check it out, rebase onto its base, resolve conflicts, force push with --force-with-lease, and verify CI passes.`,
			len(rebaseNeeded), list.String()))
	}

	sections = append(sections, fmt.Sprintf(`## Standard Development Tasks

1. Repository health check: review git status and any uncommitted changes.
2. Code quality: run linting and tests, update dependencies if needed.
3. Issue work: check assigned issues and work high-priority ones based on previous planning.

## Work Guidelines

- Work systematically: complete higher priority tasks first
- Atomic commits: small, focused commits with clear messages
- Test frequently: run tests before committing changes
- Follow existing code style and architectural patterns

## Repository Info

- Priority: %s
- Watch branches: %s
- Pending reviews: %d
- My open PRs: %d
- Assigned issues: %d

Start with the highest priority tasks and work your way down. Report your progress as you complete each section.`,
		repo.Priority, strings.Join(repo.WatchBranches, ", "),
		len(data.PendingReviews), len(data.MyPRs), len(data.AssignedIssues)))

	return strings.Join(sections, "\n\n")
}
