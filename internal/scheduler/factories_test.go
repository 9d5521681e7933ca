package scheduler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

func TestScheduler_AddPRImplementation(t *testing.T) {
	s, _, _ := newTestScheduler()

	pr := domain.PullRequest{Number: 42, Title: "Add retry logic", URL: "https://example.com/pr/42"}
	task, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskTypePRImplementation, task.Type)
	assert.Equal(t, domain.TaskModeWorknight, task.AssignedToMode)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Contains(t, task.Title, "#42")
	assert.Equal(t, 42, task.Metadata["pr_number"])
}

func TestScheduler_AddPRImplementation_Idempotent(t *testing.T) {
	s, _, _ := newTestScheduler()
	pr := domain.PullRequest{Number: 42, Title: "Add retry logic"}

	first, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)
	second, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Same PR number in another repo is a distinct task.
	other, err := s.AddPRImplementation("web", pr, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestScheduler_AddPRImplementation_DedupAfterJSONRoundTrip(t *testing.T) {
	s, store, _ := newTestScheduler()
	pr := domain.PullRequest{Number: 42}

	first, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)

	// Numbers come back from the JSON store as float64.
	raw, err := json.Marshal(store.tasks)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &store.tasks))

	second, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestScheduler_AddPRImplementation_ReschedulesAfterCompletion(t *testing.T) {
	s, _, _ := newTestScheduler()
	pr := domain.PullRequest{Number: 42}

	first, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)
	require.NoError(t, s.Complete(first.ID, ""))

	second, err := s.AddPRImplementation("api", pr, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestScheduler_AddBranchRebase(t *testing.T) {
	s, _, _ := newTestScheduler()

	branch := domain.Branch{Name: "feature/retry", Behind: 7}
	task, err := s.AddBranchRebase("api", branch)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskTypeBranchRebase, task.Type)
	assert.Equal(t, "feature/retry", task.Metadata["branch"])
	assert.Contains(t, task.Description, "7 commits behind")

	again, err := s.AddBranchRebase("api", branch)
	require.NoError(t, err)
	assert.Equal(t, task.ID, again.ID)
}

func TestScheduler_AddIssueImplementation(t *testing.T) {
	s, _, _ := newTestScheduler()

	issue := domain.Issue{Number: 7, Title: "Flaky upload test", URL: "https://example.com/issues/7"}
	task, err := s.AddIssueImplementation("api", issue)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskTypeIssueImplementation, task.Type)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Contains(t, task.Title, "Flaky upload test")

	again, err := s.AddIssueImplementation("api", issue)
	require.NoError(t, err)
	assert.Equal(t, task.ID, again.ID)
}
