package github

import (
	"strings"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// Rebase action-needed tags. They travel into task metadata, so keep the
// values stable.
const (
	ActionCommitOrStash    = "commit_or_stash"
	ActionManualResolution = "manual_resolution"
	ActionInvestigate      = "investigate"
)

// RebaseBranch rebases a branch onto origin/<base>. The working tree must
// be clean; a conflicted rebase is aborted so the checkout is always left
// usable. Failures are data in the outcome, never errors.
func (c *Client) RebaseBranch(branch, base string) domain.RebaseOutcome {
	if base == "" {
		base = "main"
	}

	if _, err := c.git("fetch"); err != nil {
		return domain.RebaseOutcome{Error: err.Error(), ActionNeeded: ActionInvestigate}
	}

	status, err := c.git("status", "--porcelain")
	if err != nil {
		return domain.RebaseOutcome{Error: err.Error(), ActionNeeded: ActionInvestigate}
	}
	if status != "" {
		return domain.RebaseOutcome{
			Error:        "uncommitted changes present",
			ActionNeeded: ActionCommitOrStash,
		}
	}

	if _, err := c.git("checkout", branch); err != nil {
		return domain.RebaseOutcome{Error: err.Error(), ActionNeeded: ActionInvestigate}
	}

	if _, err := c.git("rebase", "origin/"+base); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "conflict") {
			conflicts := c.conflictFiles()
			_, _ = c.git("rebase", "--abort")
			return domain.RebaseOutcome{
				Error:        "merge conflicts detected",
				ActionNeeded: ActionManualResolution,
				Conflicts:    conflicts,
			}
		}
		_, _ = c.git("rebase", "--abort")
		return domain.RebaseOutcome{Error: err.Error(), ActionNeeded: ActionInvestigate}
	}

	return domain.RebaseOutcome{
		Success: true,
		Message: "rebased " + branch + " onto origin/" + base,
	}
}

// conflictFiles lists unmerged paths of an in-progress rebase.
func (c *Client) conflictFiles() []string {
	out, err := c.git("diff", "--name-only", "--diff-filter=U")
	if err != nil || out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
