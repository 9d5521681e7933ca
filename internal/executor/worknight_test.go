package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

func TestWorknight_SessionExpiredSkips(t *testing.T) {
	factory := &fakeFactory{}
	e := NewWorknight(testDeps(domain.SessionExpired, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	assert.Equal(t, StatusSkipped, result.Status)
	assert.Empty(t, factory.order)
}

func TestWorknight_ProcessesAllRepos(t *testing.T) {
	factory := &fakeFactory{}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, nil))

	repos := []domain.RepoConfig{
		highRepo("api"),
		{Name: "tools", Path: "/tmp/tools", Priority: domain.PriorityLow},
	}
	result := e.Execute(context.Background(), repos)

	require.Equal(t, StatusCompleted, result.Status)
	assert.Len(t, result.Repos, 2)
	for _, repoResult := range result.Repos {
		assert.Equal(t, StatusReady, repoResult.Status)
		assert.Contains(t, repoResult.Prompt, "Worknight Mode")
	}
}

func TestWorknight_StoreErrorIsolatedPerRepo(t *testing.T) {
	factory := &fakeFactory{}
	store := &memStore{loadErr: errors.New("disk gone")}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, store))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	require.Equal(t, StatusCompleted, result.Status)
	repoResult := result.Repos["api"]
	require.NotNil(t, repoResult)
	assert.Equal(t, StatusError, repoResult.Status)
	assert.Contains(t, repoResult.Error, "disk gone")
}

func TestWorknight_PanicInOneRepoIsContained(t *testing.T) {
	factory := &fakeFactory{gateways: map[string]*fakeGateway{
		"b": {gatherPanic: "nil branch map"},
	}}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, nil))

	repos := []domain.RepoConfig{highRepo("a"), highRepo("b"), highRepo("c")}
	result := e.Execute(context.Background(), repos)

	require.Equal(t, StatusCompleted, result.Status)
	require.Len(t, result.Repos, 3)
	assert.Equal(t, StatusError, result.Repos["b"].Status)
	assert.Contains(t, result.Repos["b"].Error, "nil branch map")
	assert.Equal(t, StatusReady, result.Repos["a"].Status)
	assert.Equal(t, StatusReady, result.Repos["c"].Status)
}

func TestWorknight_ImplementationRequestsExcludeOwnPRs(t *testing.T) {
	gw := &fakeGateway{
		data: domain.RepoData{
			MyPRs: []domain.PullRequest{{Number: 7, Title: "Mine", Author: "me"}},
		},
		involved: []domain.PullRequest{
			{Number: 7, Title: "Please implement retries", Author: "me"},
			{Number: 8, Title: "Please implement pagination", Author: "alice", URL: "u8"},
			{Number: 9, Title: "Typo fix", Author: "bob"},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "Implementation Requests from Others")
	assert.Contains(t, prompt, "PR #8")
	// Own PR matches the keywords but must not appear as a request.
	assert.NotContains(t, prompt, "PR #7: Please implement retries")
	assert.NotContains(t, prompt, "PR #9")
}

func TestWorknight_KeywordMatchInBody(t *testing.T) {
	gw := &fakeGateway{
		involved: []domain.PullRequest{
			{Number: 12, Title: "Feature request", Body: "Could you add rate limiting?", Author: "alice"},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	assert.Contains(t, result.Repos["api"].Prompt, "PR #12")
}

func TestWorknight_MyPRsNeedingImplementation(t *testing.T) {
	gw := &fakeGateway{
		data: domain.RepoData{
			MyPRs: []domain.PullRequest{
				{Number: 5, Title: "Add worker pool", Author: "me", URL: "u5"},
				{Number: 6, Title: "Clean PR", Author: "me"},
			},
		},
		comments: map[int][]domain.Comment{
			5: {{Author: "alice", Body: "This needs to be configurable."}},
			6: {{Author: "bob", Body: "LGTM"}},
		},
		reviewComments: map[int][]domain.Comment{
			5: {{Author: "alice", Body: "Please change the channel size."}},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "My PRs Needing Implementation")
	assert.Contains(t, prompt, "PR #5")
	assert.Contains(t, prompt, "2 implementation comments")
	assert.NotContains(t, prompt, "PR #6")
}

func TestWorknight_RebaseSection(t *testing.T) {
	gw := &fakeGateway{
		data: domain.RepoData{
			Branches: []domain.Branch{
				{Name: "feature/y", Behind: 6},
				{Name: "main", Behind: 1, Current: true},
				{Name: "feature/fresh", Behind: 0},
			},
		},
	}
	factory := &fakeFactory{gateways: map[string]*fakeGateway{"api": gw}}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, nil))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	prompt := result.Repos["api"].Prompt
	assert.Contains(t, prompt, "Branch Management")
	assert.Contains(t, prompt, "feature/y: 6 commits behind")
	assert.NotContains(t, prompt, "feature/fresh")
}

func TestWorknight_ScheduledTasksInPrompt(t *testing.T) {
	due := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	store := &memStore{tasks: []domain.ScheduledTask{
		{
			ID:             "api_branch_rebase_20240310_090000",
			Title:          "Rebase feature/y",
			RepoName:       "api",
			AssignedToMode: domain.TaskModeWorknight,
			Priority:       domain.PriorityLow,
			Status:         domain.TaskPending,
			DueDate:        &due,
			CreatedAt:      due.Add(-24 * time.Hour),
		},
		{
			ID:             "api_weekend_cleanup",
			Title:          "Weekend only",
			RepoName:       "api",
			AssignedToMode: domain.TaskModeWeekend,
			Priority:       domain.PriorityHigh,
			Status:         domain.TaskPending,
		},
	}}
	factory := &fakeFactory{}
	e := NewWorknight(testDeps(domain.SessionNormal, factory, store))

	result := e.Execute(context.Background(), []domain.RepoConfig{highRepo("api")})

	repoResult := result.Repos["api"]
	assert.Contains(t, repoResult.Prompt, "Scheduled Tasks (PRIORITY)")
	assert.Contains(t, repoResult.Prompt, "Rebase feature/y")
	assert.NotContains(t, repoResult.Prompt, "Weekend only")
	assert.Equal(t, []string{"api_branch_rebase_20240310_090000"}, repoResult.ScheduledTaskIDs)
}
