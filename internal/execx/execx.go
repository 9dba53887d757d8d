// Package execx runs external commands on behalf of plotdev.
// Every domain package (uigen, pytest, pip, gitops, applaunch) goes
// through the Runner interface so command invocations can be recorded
// and faked in tests.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Cmd describes a single external command invocation.
type Cmd struct {
	// Name is the binary to invoke (resolved via PATH if not absolute).
	Name string
	// Args are the command arguments, excluding the binary name.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra environment variables in KEY=VALUE form, appended
	// to the current process environment.
	Env []string
}

// String returns the command as it would appear on a shell line.
func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result contains the outcome of an executed command.
type Result struct {
	// Output is the combined stdout and stderr, order-preserving.
	Output string
	// ExitCode is the command's exit code. 0 on success.
	ExitCode int
	// Duration is how long the command ran.
	Duration time.Duration
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes external commands.
type Runner interface {
	// Exec runs the command and returns its result. A non-zero exit code
	// is reported through Result, not the error; the error is reserved
	// for failures to start the command or context cancellation.
	Exec(ctx context.Context, cmd Cmd) (Result, error)
}

// Local runs commands on the local machine via os/exec.
type Local struct{}

// NewLocal creates a Runner backed by the local OS.
func NewLocal() *Local {
	return &Local{}
}

// Exec runs the command, capturing combined output.
func (l *Local) Exec(ctx context.Context, c Cmd) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Output:   buf.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		// Context errors take precedence over the exit status.
		if ctx.Err() == context.DeadlineExceeded {
			return result, fmt.Errorf("%s timed out: %w", c.Name, ctx.Err())
		}
		if ctx.Err() == context.Canceled {
			return result, fmt.Errorf("%s was canceled: %w", c.Name, ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", c.Name, err)
	}

	return result, nil
}

// Start launches the command without waiting and returns the process.
// Used by the app launcher, which supervises the process itself.
func (l *Local) Start(ctx context.Context, c Cmd) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", c.Name, err)
	}
	return cmd, nil
}
