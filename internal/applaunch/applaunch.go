// Package applaunch starts the desktop application from the source
// tree, optionally under cProfile.
package applaunch

import (
	"context"
	"os/exec"
	"time"

	"github.com/plotlyst/plotdev/internal/config"
	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/execx"
)

// Result describes a finished application run.
type Result struct {
	// ExitCode is the application's exit code.
	ExitCode int
	// Duration is how long the application ran.
	Duration time.Duration
	// StatsFile is the cProfile statistics file, set in profiling mode.
	StatsFile string
}

// Launcher starts the application process.
type Launcher struct {
	cfg     config.RunConfig
	workDir string
}

// New creates a Launcher. workDir is the project root the interpreter
// runs from.
func New(cfg config.RunConfig, workDir string) *Launcher {
	return &Launcher{cfg: cfg, workDir: workDir}
}

// Args returns the interpreter arguments for a run. In profiling mode
// the entry module is wrapped with cProfile writing the stats file.
func (l *Launcher) Args(profile bool) []string {
	if profile {
		return []string{"-m", "cProfile", "-o", l.cfg.ProfileStats, "-m", l.cfg.Entry}
	}
	return []string{"-m", l.cfg.Entry}
}

// Env returns the extra environment for the application process.
func (l *Launcher) Env() []string {
	return []string{"PYTHONPATH=" + l.cfg.SourceRoot}
}

// Run starts the application in the background and waits for it to
// exit, propagating its exit code. Stdout and stderr pass through to
// the caller's terminal.
func (l *Launcher) Run(ctx context.Context, profile bool) (*Result, error) {
	cmd, err := execx.NewLocal().Start(ctx, execx.Cmd{
		Name: l.cfg.Python,
		Args: l.Args(profile),
		Dir:  l.workDir,
		Env:  l.Env(),
	})
	if err != nil {
		return nil, deverr.Wrap(err, deverr.ErrRun, "failed to start "+l.cfg.Python)
	}

	result := &Result{}
	if profile {
		result.StatsFile = l.cfg.ProfileStats
	}

	start := time.Now()
	waitErr := cmd.Wait()
	result.Duration = time.Since(start)

	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, deverr.Wrap(waitErr, deverr.ErrRun, "application process failed")
	}

	return result, nil
}
