package executor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/orchestra-automation/orchestra/internal/domain"
	"github.com/orchestra-automation/orchestra/internal/scheduler"
)

// weekendTaskCap limits scheduled tasks per weekend prompt. Weekend work
// is broad maintenance, so fewer pinned tasks than a worknight.
const weekendTaskCap = 3

// Weekend is the maintenance executor: all repos in priority order, one
// comprehensive audit prompt per repo.
type Weekend struct {
	base
	gateways domain.GatewayFactory
	sched    *scheduler.Scheduler
}

// NewWeekend creates the weekend executor.
func NewWeekend(deps Deps) *Weekend {
	return &Weekend{
		base:     base{session: deps.Session, log: deps.Log},
		gateways: deps.Gateways,
		sched:    deps.Scheduler,
	}
}

// Execute processes every repo, highest priority first.
func (e *Weekend) Execute(ctx context.Context, repos []domain.RepoConfig) *Result {
	if e.sessionExpired() {
		e.log.Info("", "weekend", "skipping execution, session expired")
		return skippedResult()
	}
	e.logSessionStatus()

	ordered := slices.Clone(repos)
	slices.SortStableFunc(ordered, func(a, b domain.RepoConfig) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})

	results := make(map[string]*RepoResult, len(ordered))
	for _, repo := range ordered {
		if ctx.Err() != nil {
			break
		}
		results[repo.Name] = e.safeProcess(repo.Name, func() *RepoResult {
			return e.processRepo(repo)
		})
	}
	return &Result{Status: StatusCompleted, Repos: results}
}

func (e *Weekend) processRepo(repo domain.RepoConfig) *RepoResult {
	tasks, err := e.sched.TasksForMode(domain.TaskModeWeekend, repo.Name, weekendTaskCap)
	if err != nil {
		e.log.Error(repo.Name, "weekend", fmt.Sprintf("load scheduled tasks: %v", err))
		return &RepoResult{Status: StatusError, Error: err.Error()}
	}

	gw := e.gateways.ForRepo(repo)
	data := gw.GatherWeekendData()

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	return &RepoResult{
		Status:           StatusReady,
		Prompt:           weekendPrompt(repo, tasks, data),
		ScheduledTaskIDs: ids,
	}
}

func weekendPrompt(repo domain.RepoConfig, tasks []domain.ScheduledTask, data *domain.WeekendData) string {
	var sections []string

	sections = append(sections, fmt.Sprintf(`# Weekend Mode: Repository Maintenance

You are performing weekend maintenance on %s (priority: %s) located at %s.
Weekend sessions focus on long-running improvement work that does not fit
into the work week:

- Documentation accuracy and completeness
- Security posture and dependency hygiene
- Test coverage and quality
- Performance and technical debt`,
		repo.Name, repo.Priority, repo.Path))

	if len(tasks) > 0 {
		var list strings.Builder
		for _, t := range tasks {
			fmt.Fprintf(&list, "  - [%s] %s\n    %s\n", strings.ToUpper(string(t.Priority)), t.Title, t.Description)
		}
		sections = append(sections, fmt.Sprintf(`## Scheduled Tasks (PRIORITY)

%d scheduled weekend tasks for this repository. Work on these first:

%s`, len(tasks), list.String()))
	}

	if _, ok := data.SecurityFiles["ARCHITECTURE.md"]; ok {
		sections = append(sections, `## Documentation Review

ARCHITECTURE.md exists in this repository. Verify it still matches the code:
1. Compare the documented structure against the actual package layout
2. Update stale diagrams, module descriptions, and data-flow notes
3. Check README.md setup instructions still work
4. Fill documentation gaps for any newly added components`)
	}

	securityTask := `## Security Audit

Perform a security review of the repository:
1. Scan for hardcoded secrets, tokens, or credentials
2. Review authentication and authorization logic for weaknesses
3. Check input validation on all external boundaries
4. Review file permission and path handling`
	if len(data.SecurityFiles) > 0 {
		names := make([]string, 0, len(data.SecurityFiles))
		for name := range data.SecurityFiles {
			names = append(names, name)
		}
		slices.Sort(names)
		securityTask += fmt.Sprintf("\n\nSecurity-relevant files present: %s", strings.Join(names, ", "))
	}
	sections = append(sections, securityTask)

	if len(data.DependencyFiles) > 0 {
		names := make([]string, 0, len(data.DependencyFiles))
		for name := range data.DependencyFiles {
			names = append(names, name)
		}
		slices.Sort(names)

		depTask := fmt.Sprintf(`## Dependency Updates

Dependency manifests found: %s

1. Check each dependency for available updates
2. Prioritize security patches over feature upgrades
3. Update conservatively: patch and minor versions unless a major is required
4. Run the full test suite after each update batch`,
			strings.Join(names, ", "))

		switch {
		case data.Vulnerabilities.Err != "":
			depTask += fmt.Sprintf("\n\nNote: the vulnerability check failed (%s); review dependencies manually.", data.Vulnerabilities.Err)
		case data.Vulnerabilities.TotalIssues() > 0:
			depTask += fmt.Sprintf("\n\nURGENT: %d known vulnerability findings (%d advisories, %d alerts). Address these first.",
				data.Vulnerabilities.TotalIssues(), data.Vulnerabilities.Advisories, data.Vulnerabilities.Alerts)
		}
		sections = append(sections, depTask)
	}

	sections = append(sections, `## Test Coverage

1. Identify packages or modules with weak test coverage
2. Add tests for critical paths and error handling first
3. Remove or fix flaky tests
4. Make sure new tests follow the existing test conventions`)

	sections = append(sections, `## Performance Review

1. Look for obvious inefficiencies: repeated work, unnecessary allocations, N+1 queries
2. Check for resource leaks: unclosed files, connections, goroutines
3. Profile only where a real problem is suspected; do not micro-optimize`)

	sections = append(sections, `## Code Quality and Compliance

1. Run linters and fix warnings in code you touch
2. Remove dead code and unused dependencies
3. Check license headers and attribution files are intact
4. Flag any code that handles personal data for review`)

	sections = append(sections, fmt.Sprintf(`## Work Guidelines

- One concern per branch and PR: do not mix security fixes with refactors
- Every change needs passing tests before it lands
- Open PRs for review rather than pushing to protected branches
- Document what you audited even when nothing needed fixing

## Repository Status

- Priority: %s
- Open PRs: %d
- Branches: %d
- Dependency manifests: %d
- Security findings: %d

Work through the sections above in order. Summarize what was done, what was deferred, and why.`,
		repo.Priority, len(data.MyPRs), len(data.Branches),
		len(data.DependencyFiles), data.Vulnerabilities.TotalIssues()))

	return strings.Join(sections, "\n\n")
}
