// Package gitops handles git maintenance for the repository: stale
// branch pruning and release-branch promotion. All git interaction goes
// through the git CLI.
package gitops

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/plotlyst/plotdev/internal/config"
	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/execx"
)

// Git runs git operations in a working directory.
type Git struct {
	// WorkDir is the repository root. Empty means the current directory.
	WorkDir string
	// Config contains git configuration settings.
	Config config.GitConfig

	runner execx.Runner
}

// New creates a new Git instance.
func New(workDir string, cfg config.GitConfig, runner execx.Runner) *Git {
	return &Git{WorkDir: workDir, Config: cfg, runner: runner}
}

// git runs a git subcommand and returns its result.
func (g *Git) git(ctx context.Context, args ...string) (execx.Result, error) {
	res, err := g.runner.Exec(ctx, execx.Cmd{
		Name: "git",
		Args: args,
		Dir:  g.WorkDir,
	})
	if err != nil {
		return res, deverr.Wrap(err, deverr.ErrGit, "failed to run git "+args[0])
	}
	return res, nil
}

// gitOK runs a git subcommand and fails on a non-zero exit.
func (g *Git) gitOK(ctx context.Context, args ...string) (execx.Result, error) {
	res, err := g.git(ctx, args...)
	if err != nil {
		return res, err
	}
	if !res.Success() {
		return res, deverr.New(deverr.ErrGit, fmt.Sprintf("git %s failed", strings.Join(args, " "))).
			WithDetails("exit_code", strconv.Itoa(res.ExitCode)).
			WithDetails("output", strings.TrimSpace(res.Output))
	}
	return res, nil
}

// IsRepo checks if the working directory is a git repository.
func (g *Git) IsRepo(ctx context.Context) bool {
	res, err := g.git(ctx, "rev-parse", "--git-dir")
	return err == nil && res.Success()
}

// CurrentBranch returns the name of the checked-out branch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	res, err := g.gitOK(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Output), nil
}

// LocalBranches returns all local branch names.
func (g *Git) LocalBranches(ctx context.Context) ([]string, error) {
	res, err := g.gitOK(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(res.Output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// RemoteBranchExists reports whether a same-named branch exists on the
// configured remote. Queries the remote directly so stale tracking refs
// don't mask deleted branches.
func (g *Git) RemoteBranchExists(ctx context.Context, branch string) (bool, error) {
	res, err := g.git(ctx, "ls-remote", "--exit-code", "--heads", g.Config.Remote, branch)
	if err != nil {
		return false, err
	}
	switch res.ExitCode {
	case 0:
		return true, nil
	case 2:
		// ls-remote exits 2 when no matching refs exist.
		return false, nil
	default:
		return false, deverr.New(deverr.ErrGit, fmt.Sprintf("failed to query remote %s", g.Config.Remote)).
			WithDetails("branch", branch).
			WithDetails("output", strings.TrimSpace(res.Output))
	}
}

// LastCommitTime returns the commit time of the branch tip.
func (g *Git) LastCommitTime(ctx context.Context, branch string) (time.Time, error) {
	res, err := g.gitOK(ctx, "log", "-1", "--format=%ct", branch)
	if err != nil {
		return time.Time{}, err
	}

	secs, err := strconv.ParseInt(strings.TrimSpace(res.Output), 10, 64)
	if err != nil {
		return time.Time{}, deverr.Wrap(err, deverr.ErrGit, fmt.Sprintf("unparseable commit time for %s", branch))
	}
	return time.Unix(secs, 0), nil
}

// DeleteBranch force-deletes a local branch.
func (g *Git) DeleteBranch(ctx context.Context, branch string) error {
	_, err := g.gitOK(ctx, "branch", "-D", branch)
	return err
}

// Checkout switches to the given branch.
func (g *Git) Checkout(ctx context.Context, branch string) error {
	_, err := g.gitOK(ctx, "checkout", branch)
	return err
}

// Push pushes a branch to the configured remote.
func (g *Git) Push(ctx context.Context, branch string) error {
	_, err := g.gitOK(ctx, "push", g.Config.Remote, branch)
	return err
}

// Fetch updates remote-tracking refs, pruning deleted remote branches.
func (g *Git) Fetch(ctx context.Context) error {
	_, err := g.gitOK(ctx, "fetch", "--prune", g.Config.Remote)
	return err
}
