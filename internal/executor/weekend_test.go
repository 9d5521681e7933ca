package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

func TestWeekend_SessionExpiredSkips(t *testing.T) {
	factory := &fakeFactory{}
	e := NewWeekend(testDeps(domain.SessionExpired, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	assert.Equal(t, StatusSkipped, result.Status)
	assert.Empty(t, factory.order)
}

func TestWeekend_ProcessesReposByPriority(t *testing.T) {
	factory := &fakeFactory{}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, nil))

	repos := []domain.RepoConfig{
		{Name: "docs", Priority: domain.PriorityLow},
		{Name: "api", Priority: domain.PriorityHigh},
		{Name: "tools", Priority: domain.PriorityMedium},
	}
	result := e.Execute(context.Background(), repos)

	require.Equal(t, StatusCompleted, result.Status)
	assert.Len(t, result.Repos, 3)
	assert.Equal(t, []string{"api", "tools", "docs"}, factory.order)
}

func TestWeekend_PanicInOneRepoIsContained(t *testing.T) {
	factory := &fakeFactory{gateways: map[string]*fakeGateway{
		"b": {gatherPanic: "missing manifest"},
	}}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, nil))

	repos := []domain.RepoConfig{highRepo("a"), highRepo("b"), highRepo("c")}
	result := e.Execute(context.Background(), repos)

	require.Equal(t, StatusCompleted, result.Status)
	require.Len(t, result.Repos, 3)
	assert.Equal(t, StatusError, result.Repos["b"].Status)
	assert.Contains(t, result.Repos["b"].Error, "missing manifest")
	assert.Equal(t, StatusReady, result.Repos["a"].Status)
	assert.Equal(t, StatusReady, result.Repos["c"].Status)
}

func TestWeekend_BaselineSections(t *testing.T) {
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": {}}}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "Weekend Mode: Repository Maintenance")
	assert.Contains(t, prompt, "Security Audit")
	assert.Contains(t, prompt, "Test Coverage")
	assert.Contains(t, prompt, "Performance Review")
	assert.Contains(t, prompt, "Code Quality and Compliance")
	// Conditional sections need data to appear.
	assert.NotContains(t, prompt, "Documentation Review")
	assert.NotContains(t, prompt, "Dependency Updates")
}

func TestWeekend_DocumentationSectionNeedsArchitectureFile(t *testing.T) {
	gw := &fakeGateway{
		weekend: domain.WeekendData{
			SecurityFiles: map[string]domain.RepoFile{
				"ARCHITECTURE.md": {Content: "layout"},
				"SECURITY.md":     {Content: "policy"},
			},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "Documentation Review")
	assert.Contains(t, prompt, "Security-relevant files present: ARCHITECTURE.md, SECURITY.md")
}

func TestWeekend_DependencySectionWithVulnerabilities(t *testing.T) {
	gw := &fakeGateway{
		weekend: domain.WeekendData{
			DependencyFiles: map[string]domain.RepoFile{
				"go.mod":       {Content: "module x"},
				"package.json": {Content: "{}"},
			},
			Vulnerabilities: domain.VulnerabilityReport{Advisories: 1, Alerts: 2},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "Dependency Updates")
	assert.Contains(t, prompt, "go.mod, package.json")
	assert.Contains(t, prompt, "URGENT: 3 known vulnerability findings (1 advisories, 2 alerts)")
}

func TestWeekend_VulnerabilityCheckFailureNoted(t *testing.T) {
	gw := &fakeGateway{
		weekend: domain.WeekendData{
			DependencyFiles: map[string]domain.RepoFile{"go.mod": {}},
			Vulnerabilities: domain.VulnerabilityReport{Err: "HTTP 403"},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "vulnerability check failed (HTTP 403)")
	assert.NotContains(t, prompt, "URGENT")
}

func TestWeekend_ScheduledTasksLimitedToThree(t *testing.T) {
	store := &memStore{}
	for _, title := range []string{"one", "two", "three", "four"} {
		store.tasks = append(store.tasks, domain.ScheduledTask{
			ID:             "api_task_" + title,
			Title:          title,
			RepoName:       "api",
			AssignedToMode: domain.TaskModeWeekend,
			Priority:       domain.PriorityMedium,
			Status:         domain.TaskPending,
		})
	}
	factory := &fakeFactory{}
	e := NewWeekend(testDeps(domain.SessionNormal, factory, store))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	repoResult := result.Repos["api"]
	assert.Len(t, repoResult.ScheduledTaskIDs, 3)
	assert.Contains(t, repoResult.Prompt, "Scheduled Tasks (PRIORITY)")
}
