// Package gitinfo inspects local repository state with go-git.
//
// Branch topology is read straight from the object database instead of
// shelling out, so it also covers branches that exist only locally.
package gitinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// Inspector reads branch and commit state from a repository checkout.
type Inspector struct {
	path string
}

// New creates an Inspector for the repository at path.
func New(path string) *Inspector {
	return &Inspector{path: path}
}

// Branches lists all local branches with their position relative to their
// remote counterpart. A branch without a remote counterpart reports zero
// ahead/behind.
func (i *Inspector) Branches() ([]domain.Branch, error) {
	repo, err := git.PlainOpen(i.path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	head, _ := repo.Head() // Detached or unborn HEAD is fine.

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var branches []domain.Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branch := domain.Branch{
			Name:       ref.Name().Short(),
			LastCommit: ref.Hash().String(),
			Remote:     "origin",
			Current:    head != nil && head.Name() == ref.Name(),
		}

		if commit, err := repo.CommitObject(ref.Hash()); err == nil {
			branch.LastCommitDate = commit.Committer.When
		}

		remoteName := plumbing.NewRemoteReferenceName("origin", ref.Name().Short())
		if remoteRef, err := repo.Reference(remoteName, true); err == nil {
			branch.Ahead, branch.Behind = aheadBehind(repo, ref.Hash(), remoteRef.Hash())
		}

		branches = append(branches, branch)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk branches: %w", err)
	}
	return branches, nil
}

// CommitsSince returns commits reachable from a branch with a committer
// date after since, newest first.
func (i *Inspector) CommitsSince(branch string, since time.Time) ([]domain.Commit, error) {
	repo, err := git.PlainOpen(i.path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("resolve branch %s: %w", branch, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: ref.Hash(), Since: &since})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", branch, err)
	}

	var commits []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commit := domain.Commit{
			SHA:     c.Hash.String(),
			Message: firstLine(c.Message),
			Author:  c.Author.Name,
			Date:    c.Committer.When,
		}
		if stats, err := c.Stats(); err == nil {
			for _, s := range stats {
				commit.FilesChanged = append(commit.FilesChanged, s.Name)
			}
		}
		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	return commits, nil
}

// aheadBehind counts commits unique to each side by comparing ancestor
// sets. Errors degrade to zero counts; a miscounted branch is better than
// a failed data gather.
func aheadBehind(repo *git.Repository, local, remote plumbing.Hash) (int, int) {
	if local == remote {
		return 0, 0
	}

	localSet, err := ancestorSet(repo, local)
	if err != nil {
		return 0, 0
	}
	remoteSet, err := ancestorSet(repo, remote)
	if err != nil {
		return 0, 0
	}

	ahead, behind := 0, 0
	for h := range localSet {
		if _, ok := remoteSet[h]; !ok {
			ahead++
		}
	}
	for h := range remoteSet {
		if _, ok := localSet[h]; !ok {
			behind++
		}
	}
	return ahead, behind
}

func ancestorSet(repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, err
	}
	set := map[plumbing.Hash]struct{}{}
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
