package github

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RebaseBranch_Success(t *testing.T) {
	runner := &fakeRunner{}
	c := newTestClient(runner, nil)

	outcome := c.RebaseBranch("feature/x", "")

	assert.True(t, outcome.Success)
	assert.Contains(t, outcome.Message, "origin/main")
	require.Len(t, runner.calls, 4)
	assert.Equal(t, "git fetch", runner.calls[0])
	assert.Equal(t, "git status --porcelain", runner.calls[1])
	assert.Equal(t, "git checkout feature/x", runner.calls[2])
	assert.Equal(t, "git rebase origin/main", runner.calls[3])
}

func TestClient_RebaseBranch_DirtyWorkingTree(t *testing.T) {
	runner := &fakeRunner{responses: map[string]string{
		"status --porcelain": " M internal/server.go",
	}}
	c := newTestClient(runner, nil)

	outcome := c.RebaseBranch("feature/x", "main")

	assert.False(t, outcome.Success)
	assert.Equal(t, ActionCommitOrStash, outcome.ActionNeeded)
	// The rebase itself is never attempted.
	for _, call := range runner.calls {
		assert.NotContains(t, call, "rebase")
	}
}

func TestClient_RebaseBranch_ConflictAborts(t *testing.T) {
	runner := &fakeRunner{
		responses: map[string]string{
			"diff --name-only --diff-filter=U": "internal/server.go\ninternal/client.go",
		},
		errors: map[string]error{
			"rebase origin/develop": fmt.Errorf("exit status 1: CONFLICT (content): merge conflict"),
		},
	}
	c := newTestClient(runner, nil)

	outcome := c.RebaseBranch("feature/x", "develop")

	assert.False(t, outcome.Success)
	assert.Equal(t, ActionManualResolution, outcome.ActionNeeded)
	assert.Equal(t, []string{"internal/server.go", "internal/client.go"}, outcome.Conflicts)
	assert.Contains(t, runner.calls, "git rebase --abort")
}

func TestClient_RebaseBranch_UnknownFailure(t *testing.T) {
	runner := &fakeRunner{errors: map[string]error{
		"rebase origin/main": fmt.Errorf("exit status 128: fatal: invalid upstream"),
	}}
	c := newTestClient(runner, nil)

	outcome := c.RebaseBranch("feature/x", "main")

	assert.False(t, outcome.Success)
	assert.Equal(t, ActionInvestigate, outcome.ActionNeeded)
	assert.Contains(t, outcome.Error, "invalid upstream")
}

func TestClient_RebaseBranch_FetchFailure(t *testing.T) {
	runner := &fakeRunner{errors: map[string]error{
		"fetch": fmt.Errorf("could not resolve host"),
	}}
	c := newTestClient(runner, nil)

	outcome := c.RebaseBranch("feature/x", "main")

	assert.False(t, outcome.Success)
	assert.Equal(t, ActionInvestigate, outcome.ActionNeeded)
}
