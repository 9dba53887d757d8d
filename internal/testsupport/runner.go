// Package testsupport provides shared fakes for package tests.
package testsupport

import (
	"context"

	"github.com/plotlyst/plotdev/internal/execx"
)

// FakeRunner records every command it receives and answers from a
// scripted handler. The zero value answers every command with success
// and empty output.
type FakeRunner struct {
	// Calls holds every command executed, in order.
	Calls []execx.Cmd
	// Handler produces the result for a command. Nil means success.
	Handler func(cmd execx.Cmd) (execx.Result, error)
}

// Exec implements execx.Runner.
func (f *FakeRunner) Exec(_ context.Context, cmd execx.Cmd) (execx.Result, error) {
	f.Calls = append(f.Calls, cmd)
	if f.Handler != nil {
		return f.Handler(cmd)
	}
	return execx.Result{}, nil
}

// CommandLines renders the recorded calls as shell-style lines.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, cmd := range f.Calls {
		lines = append(lines, cmd.String())
	}
	return lines
}
