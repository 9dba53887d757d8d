package applaunch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plotlyst/plotdev/internal/config"
)

func testRunConfig() config.RunConfig {
	return config.RunConfig{
		Python:       "python3",
		SourceRoot:   "src/main/python",
		Entry:        "plotlyst",
		ProfileStats: "profile.stats",
	}
}

// fakeInterpreter writes an executable script that records its argv and
// exits with the given code.
func fakeInterpreter(t *testing.T, exitCode int) (bin, argvFile string) {
	t.Helper()
	dir := t.TempDir()
	argvFile = filepath.Join(dir, "argv")
	bin = filepath.Join(dir, "python-fake")

	script := "#!/bin/sh\necho \"$@\" > " + argvFile + "\nexit " + string(rune('0'+exitCode)) + "\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake interpreter: %v", err)
	}
	return bin, argvFile
}

func TestLauncher_Args(t *testing.T) {
	l := New(testRunConfig(), "")

	plain := strings.Join(l.Args(false), " ")
	if plain != "-m plotlyst" {
		t.Errorf("Args(false) = %q, want '-m plotlyst'", plain)
	}

	profiled := strings.Join(l.Args(true), " ")
	if profiled != "-m cProfile -o profile.stats -m plotlyst" {
		t.Errorf("Args(true) = %q, want cProfile wrapper", profiled)
	}
}

func TestLauncher_Env(t *testing.T) {
	l := New(testRunConfig(), "")

	env := strings.Join(l.Env(), " ")
	if !strings.Contains(env, "PYTHONPATH=src/main/python") {
		t.Errorf("Env() = %q, want PYTHONPATH", env)
	}
}

func TestLauncher_Run_Success(t *testing.T) {
	bin, argvFile := fakeInterpreter(t, 0)

	cfg := testRunConfig()
	cfg.Python = bin
	l := New(cfg, "")

	result, err := l.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if result.StatsFile != "" {
		t.Errorf("StatsFile = %q, want empty without profiling", result.StatsFile)
	}

	argv, err := os.ReadFile(argvFile)
	if err != nil {
		t.Fatalf("fake interpreter never ran: %v", err)
	}
	if strings.TrimSpace(string(argv)) != "-m plotlyst" {
		t.Errorf("argv = %q, want '-m plotlyst'", argv)
	}
}

func TestLauncher_Run_ProfileMode(t *testing.T) {
	bin, argvFile := fakeInterpreter(t, 0)

	cfg := testRunConfig()
	cfg.Python = bin
	l := New(cfg, "")

	result, err := l.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.StatsFile != "profile.stats" {
		t.Errorf("StatsFile = %q, want profile.stats", result.StatsFile)
	}

	argv, err := os.ReadFile(argvFile)
	if err != nil {
		t.Fatalf("fake interpreter never ran: %v", err)
	}
	if !strings.Contains(string(argv), "-m cProfile -o profile.stats") {
		t.Errorf("argv = %q, want cProfile flags", argv)
	}
}

func TestLauncher_Run_PropagatesExitCode(t *testing.T) {
	bin, _ := fakeInterpreter(t, 3)

	cfg := testRunConfig()
	cfg.Python = bin
	l := New(cfg, "")

	result, err := l.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run() error = %v, want nil for non-zero exit", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestLauncher_Run_MissingBinary(t *testing.T) {
	cfg := testRunConfig()
	cfg.Python = "/nonexistent/python"
	l := New(cfg, "")

	if _, err := l.Run(context.Background(), false); err == nil {
		t.Fatal("Run() error = nil, want start failure")
	}
}
