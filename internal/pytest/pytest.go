// Package pytest runs the application test suite with coverage
// instrumentation and parses the summary from pytest's output.
package pytest

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/plotlyst/plotdev/internal/config"
	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/execx"
)

// TestEnvVar is set for the application so it can detect it is running
// under the test harness.
const TestEnvVar = "PLOTLYST_TEST_ENV"

// Result contains the outcome of a test run.
type Result struct {
	// Success indicates whether all tests passed.
	Success bool
	// Command is the rendered test command.
	Command string
	// Output is the raw pytest output.
	Output string
	// Passed is the number of passing tests, if parseable.
	Passed int
	// Failed is the number of failing tests, if parseable.
	Failed int
	// Errors is the number of errored tests, if parseable.
	Errors int
	// Skipped is the number of skipped tests, if parseable.
	Skipped int
	// Duration is how long the run took.
	Duration time.Duration
	// ExitCode is pytest's exit code.
	ExitCode int
	// XMLReport is the coverage XML report path.
	XMLReport string
	// HTMLReportDir is the HTML coverage report directory.
	HTMLReportDir string
}

// Total returns the number of tests accounted for in the summary.
func (r *Result) Total() int {
	return r.Passed + r.Failed + r.Errors + r.Skipped
}

// Runner executes pytest with coverage flags.
type Runner struct {
	cfg        config.TestConfig
	sourceRoot string
	runner     execx.Runner
}

// New creates a test Runner. sourceRoot is prepended to PYTHONPATH so
// the application package resolves without installation.
func New(cfg config.TestConfig, sourceRoot string, runner execx.Runner) *Runner {
	return &Runner{cfg: cfg, sourceRoot: sourceRoot, runner: runner}
}

// Args returns the pytest arguments for the configured run.
func (r *Runner) Args() []string {
	return []string{
		"-m", "pytest",
		r.cfg.Dir,
		"--cov=" + r.cfg.CoverageModule,
		"--cov-report=xml:" + r.cfg.XMLReport,
		"--cov-report=html:" + r.cfg.HTMLReportDir,
		"-v",
	}
}

// Env returns the environment variables injected into the test process.
func (r *Runner) Env() []string {
	env := []string{
		TestEnvVar + "=1",
		"PYTHONPATH=" + r.sourceRoot,
	}
	return append(env, r.cfg.Env...)
}

// Run executes the test suite and parses the result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cmd := execx.Cmd{
		Name: r.cfg.Python,
		Args: r.Args(),
		Env:  r.Env(),
	}

	res, err := r.runner.Exec(ctx, cmd)
	if err != nil {
		return nil, deverr.Wrap(err, deverr.ErrTest, "failed to run pytest")
	}

	result := &Result{
		Command:       cmd.String(),
		Output:        res.Output,
		Duration:      res.Duration,
		ExitCode:      res.ExitCode,
		XMLReport:     r.cfg.XMLReport,
		HTMLReportDir: r.cfg.HTMLReportDir,
		Success:       res.Success(),
	}
	parseSummary(res.Output, result)

	return result, nil
}

// summaryRe matches counts in pytest's final summary line, e.g.
// "== 120 passed, 2 failed, 1 skipped in 42.01s ==".
var summaryRe = regexp.MustCompile(`(\d+) (passed|failed|error|errors|skipped)`)

// parseSummary extracts pass/fail/skip counts from pytest output.
func parseSummary(output string, result *Result) {
	for _, match := range summaryRe.FindAllStringSubmatch(output, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch match[2] {
		case "passed":
			result.Passed = n
		case "failed":
			result.Failed = n
		case "error", "errors":
			result.Errors = n
		case "skipped":
			result.Skipped = n
		}
	}
}

// Err converts a failing result into a typed error. Returns nil for a
// passing run.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	if r.Total() > 0 {
		return deverr.TestsFailed(r.Failed+r.Errors, r.Total()).
			WithDetails("command", r.Command)
	}
	return deverr.New(deverr.ErrTest, fmt.Sprintf("pytest exited with status %d", r.ExitCode)).
		WithDetails("output", lastLines(r.Output, 20))
}

// lastLines returns up to n trailing lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
