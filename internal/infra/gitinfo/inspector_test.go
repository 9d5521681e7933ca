package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content, msg string, when time.Time) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err = wt.Add(name)
	require.NoError(t, err)

	sig := &object.Signature{Name: "Dev One", Email: "dev@example.com", When: when}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return hash
}

func setRemoteRef(t *testing.T, repo *git.Repository, branch string, hash plumbing.Hash) {
	t.Helper()
	name := plumbing.NewRemoteReferenceName("origin", branch)
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(name, hash)))
}

func TestInspector_Branches_AheadOfRemote(t *testing.T) {
	dir, repo := initRepo(t)
	first := commitFile(t, repo, dir, "a.txt", "one", "first commit", t0)
	commitFile(t, repo, dir, "a.txt", "two", "second commit", t0.Add(time.Hour))
	setRemoteRef(t, repo, "master", first)

	branches, err := New(dir).Branches()
	require.NoError(t, err)
	require.Len(t, branches, 1)

	b := branches[0]
	assert.Equal(t, "master", b.Name)
	assert.True(t, b.Current)
	assert.Equal(t, 1, b.Ahead)
	assert.Equal(t, 0, b.Behind)
	assert.True(t, b.CanPush())
	assert.False(t, b.NeedsRebase())
	assert.Equal(t, t0.Add(time.Hour).Unix(), b.LastCommitDate.Unix())
}

func TestInspector_Branches_BehindRemote(t *testing.T) {
	dir, repo := initRepo(t)
	first := commitFile(t, repo, dir, "a.txt", "one", "first commit", t0)
	second := commitFile(t, repo, dir, "a.txt", "two", "second commit", t0.Add(time.Hour))

	// Park a feature branch at the first commit while the remote advanced.
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
		Hash:   first,
	}))
	setRemoteRef(t, repo, "feature", second)

	branches, err := New(dir).Branches()
	require.NoError(t, err)

	var feature *domain.Branch
	for i := range branches {
		if branches[i].Name == "feature" {
			feature = &branches[i]
		}
	}
	require.NotNil(t, feature)
	assert.Equal(t, 0, feature.Ahead)
	assert.Equal(t, 1, feature.Behind)
	assert.True(t, feature.Current)
	assert.True(t, feature.NeedsRebase())
}

func TestInspector_Branches_NoRemoteCounterpart(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "first commit", t0)

	branches, err := New(dir).Branches()
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Zero(t, branches[0].Ahead)
	assert.Zero(t, branches[0].Behind)
}

func TestInspector_Branches_NotARepository(t *testing.T) {
	_, err := New(t.TempDir()).Branches()
	assert.Error(t, err)
}

func TestInspector_CommitsSince(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "old commit", t0)
	commitFile(t, repo, dir, "b.txt", "two", "recent commit", t0.Add(48*time.Hour))

	commits, err := New(dir).CommitsSince("master", t0.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, commits, 1)

	c := commits[0]
	assert.Equal(t, "recent commit", c.Message)
	assert.Equal(t, "Dev One", c.Author)
	assert.Contains(t, c.FilesChanged, "b.txt")
}

func TestInspector_CommitsSince_UnknownBranch(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "first commit", t0)

	_, err := New(dir).CommitsSince("no-such-branch", t0)
	assert.Error(t, err)
}
