package gitops

import (
	"context"
	"time"
)

// Candidate is a local branch eligible for pruning.
type Candidate struct {
	// Name is the branch name.
	Name string
	// LastCommit is the commit time of the branch tip.
	LastCommit time.Time
}

// Age returns how long ago the branch was last committed to.
func (c Candidate) Age(now time.Time) time.Duration {
	return now.Sub(c.LastCommit)
}

// Cutoff returns the prune threshold: commits strictly older than this
// mark a branch as stale. months <= 0 falls back to three months,
// matching the tool's historical behavior.
func Cutoff(now time.Time, months int) time.Time {
	if months <= 0 {
		months = 3
	}
	return now.AddDate(0, -months, 0)
}

// StaleBranches returns the local branches that are prune candidates:
// not the current branch, no same-named branch on the remote, and a tip
// commit strictly older than the cutoff. Branches dated exactly at the
// cutoff are kept.
func (g *Git) StaleBranches(ctx context.Context, cutoff time.Time) ([]Candidate, error) {
	current, err := g.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	branches, err := g.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, branch := range branches {
		if branch == current {
			continue
		}

		onRemote, err := g.RemoteBranchExists(ctx, branch)
		if err != nil {
			return nil, err
		}
		if onRemote {
			continue
		}

		lastCommit, err := g.LastCommitTime(ctx, branch)
		if err != nil {
			return nil, err
		}
		if !lastCommit.Before(cutoff) {
			continue
		}

		candidates = append(candidates, Candidate{Name: branch, LastCommit: lastCommit})
	}

	return candidates, nil
}

// Prune deletes the given candidate branches, stopping at the first
// failure.
func (g *Git) Prune(ctx context.Context, candidates []Candidate) error {
	for _, c := range candidates {
		if err := g.DeleteBranch(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}
