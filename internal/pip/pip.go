// Package pip refreshes the application's in-house Qt helper packages:
// uninstall every configured package, then reinstall each one from its
// git source. One configured list drives both phases, so the uninstall
// and install sets are always identical.
package pip

import (
	"context"
	"fmt"
	"strings"

	"github.com/plotlyst/plotdev/internal/config"
	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/execx"
)

// PhaseFunc is notified before each package operation, for progress
// reporting. Phase is "uninstall" or "install".
type PhaseFunc func(phase string, pkg config.Package)

// Refresher uninstalls and reinstalls the configured packages.
type Refresher struct {
	cfg    config.DepsConfig
	runner execx.Runner

	// OnPackage, if set, is called before each package operation.
	OnPackage PhaseFunc
}

// New creates a Refresher for the given dependency configuration.
func New(cfg config.DepsConfig, runner execx.Runner) *Refresher {
	return &Refresher{cfg: cfg, runner: runner}
}

// Packages returns the configured package list.
func (r *Refresher) Packages() []config.Package {
	return r.cfg.Packages
}

// Refresh uninstalls all packages, then installs all packages from
// their sources. Uninstalls tolerate packages that are not installed;
// any other failure aborts immediately.
func (r *Refresher) Refresh(ctx context.Context) error {
	for _, pkg := range r.cfg.Packages {
		if r.OnPackage != nil {
			r.OnPackage("uninstall", pkg)
		}
		if err := r.uninstall(ctx, pkg); err != nil {
			return err
		}
	}

	for _, pkg := range r.cfg.Packages {
		if r.OnPackage != nil {
			r.OnPackage("install", pkg)
		}
		if err := r.install(ctx, pkg); err != nil {
			return err
		}
	}

	return nil
}

// uninstall removes one package. pip reports "not installed" either as
// a warning with exit 0 or, on older versions, as a non-zero exit; both
// are tolerated.
func (r *Refresher) uninstall(ctx context.Context, pkg config.Package) error {
	res, err := r.runner.Exec(ctx, execx.Cmd{
		Name: r.cfg.Pip,
		Args: []string{"uninstall", "-y", pkg.Name},
	})
	if err != nil {
		return deverr.Wrap(err, deverr.ErrDeps, fmt.Sprintf("failed to run pip uninstall for %s", pkg.Name))
	}
	if !res.Success() && !isNotInstalled(res.Output) {
		return deverr.New(deverr.ErrDeps, fmt.Sprintf("failed to uninstall %s", pkg.Name)).
			WithDetails("exit_code", fmt.Sprintf("%d", res.ExitCode)).
			WithDetails("output", res.Output)
	}
	return nil
}

// install installs one package from its configured source.
func (r *Refresher) install(ctx context.Context, pkg config.Package) error {
	res, err := r.runner.Exec(ctx, execx.Cmd{
		Name: r.cfg.Pip,
		Args: []string{"install", pkg.Source},
	})
	if err != nil {
		return deverr.Wrap(err, deverr.ErrDeps, fmt.Sprintf("failed to run pip install for %s", pkg.Name))
	}
	if !res.Success() {
		return deverr.InstallFailed(pkg.Name, pkg.Source, res.ExitCode).
			WithDetails("output", res.Output)
	}
	return nil
}

// isNotInstalled reports whether pip's output says the package was not
// installed to begin with.
func isNotInstalled(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "not installed") ||
		strings.Contains(lower, "no files were found to uninstall")
}
