package gitops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	deverr "github.com/plotlyst/plotdev/internal/errors"
)

// conflictMarker is git's conflict indicator in merge output. Its
// presence is fatal even when the merge command itself exits zero.
const conflictMarker = "CONFLICT"

// PromotionResult describes a release promotion attempt.
type PromotionResult struct {
	// From is the source branch merged into the release branch.
	From string
	// To is the release branch.
	To string
	// MergeOutput is the raw merge command output.
	MergeOutput string
	// Pushed indicates the release branch was pushed to the remote.
	Pushed bool
}

// Promote merges the source branch into the release branch and pushes
// it. A conflicted merge aborts before any push: the checkout returns
// to the source branch and the error carries the merge output for the
// caller to print. On success the checkout also returns to the source
// branch.
func (g *Git) Promote(ctx context.Context, from, to string) (*PromotionResult, error) {
	result := &PromotionResult{From: from, To: to}

	if err := g.Checkout(ctx, to); err != nil {
		return result, err
	}

	res, err := g.git(ctx, "merge", from)
	result.MergeOutput = res.Output
	if err != nil {
		return result, err
	}

	if strings.Contains(res.Output, conflictMarker) {
		// Leave the user back on the source branch. The conflicted merge
		// state stays on the release branch so it can be inspected or
		// aborted manually.
		_ = g.Checkout(ctx, from)
		return result, deverr.MergeConflict(from, to).WithDetails("merge_output", res.Output)
	}

	if !res.Success() {
		_ = g.Checkout(ctx, from)
		return result, deverr.New(deverr.ErrGit, fmt.Sprintf("merging %s into %s failed", from, to)).
			WithDetails("exit_code", strconv.Itoa(res.ExitCode)).
			WithDetails("output", strings.TrimSpace(res.Output))
	}

	if err := g.Push(ctx, to); err != nil {
		return result, err
	}
	result.Pushed = true

	if err := g.Checkout(ctx, from); err != nil {
		return result, err
	}

	return result, nil
}
