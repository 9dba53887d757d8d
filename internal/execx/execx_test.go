package execx

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCmd_String(t *testing.T) {
	tests := []struct {
		name string
		cmd  Cmd
		want string
	}{
		{
			name: "no args",
			cmd:  Cmd{Name: "git"},
			want: "git",
		},
		{
			name: "with args",
			cmd:  Cmd{Name: "git", Args: []string{"status", "--porcelain"}},
			want: "git status --porcelain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocal_Exec_Success(t *testing.T) {
	runner := NewLocal()

	result, err := runner.Exec(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", "echo hello"},
	})
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}

	if !result.Success() {
		t.Errorf("Success() = false, want true; output=%s", result.Output)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if !strings.Contains(result.Output, "hello") {
		t.Errorf("Output = %q, want to contain 'hello'", result.Output)
	}
}

func TestLocal_Exec_NonZeroExit(t *testing.T) {
	runner := NewLocal()

	result, err := runner.Exec(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", "echo oops >&2; exit 3"},
	})
	if err != nil {
		t.Fatalf("Exec() error = %v, want nil for non-zero exit", err)
	}

	if result.Success() {
		t.Error("Success() = true, want false")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if !strings.Contains(result.Output, "oops") {
		t.Errorf("Output = %q, want to contain stderr text", result.Output)
	}
}

func TestLocal_Exec_MissingBinary(t *testing.T) {
	runner := NewLocal()

	_, err := runner.Exec(context.Background(), Cmd{
		Name: "definitely-not-a-real-binary-xyz",
	})
	if err == nil {
		t.Fatal("Exec() error = nil, want error for missing binary")
	}
}

func TestLocal_Exec_ExtraEnv(t *testing.T) {
	runner := NewLocal()

	result, err := runner.Exec(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", "echo $PLOTDEV_TEST_VAR"},
		Env:  []string{"PLOTDEV_TEST_VAR=injected"},
	})
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if !strings.Contains(result.Output, "injected") {
		t.Errorf("Output = %q, want injected env value", result.Output)
	}
}

func TestLocal_Exec_ContextTimeout(t *testing.T) {
	runner := NewLocal()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := runner.Exec(ctx, Cmd{
		Name: "sh",
		Args: []string{"-c", "sleep 5"},
	})
	if err == nil {
		t.Fatal("Exec() error = nil, want timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %v, want timeout message", err)
	}
}
