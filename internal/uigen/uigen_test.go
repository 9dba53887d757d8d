package uigen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plotlyst/plotdev/internal/config"
	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/execx"
	"github.com/plotlyst/plotdev/internal/testsupport"
)

func testUIConfig(t *testing.T) config.UIConfig {
	t.Helper()
	dir := t.TempDir()
	return config.UIConfig{
		Compiler:      "pyuic5",
		RCC:           "pyrcc5",
		BatchCompiler: "pyqt5ac",
		BatchConfig:   filepath.Join(dir, "pyqt5ac.yml"),
		Files: []config.FilePair{
			{Source: "ui/main_window.ui", Output: filepath.Join(dir, "gen/main_window_ui.py")},
			{Source: "ui/scenes_view.ui", Output: filepath.Join(dir, "gen/scenes_view_ui.py")},
		},
		Resources: []config.FilePair{
			{Source: "ui/resources.qrc", Output: filepath.Join(dir, "gen/resources.py")},
		},
	}
}

func TestGenerator_Generate_InvokesCompilerPerFile(t *testing.T) {
	cfg := testUIConfig(t)
	runner := &testsupport.FakeRunner{}
	gen := New(cfg, runner)

	result, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// One invocation per UI file plus one per resource file.
	if len(runner.Calls) != 3 {
		t.Fatalf("expected 3 compiler invocations, got %d: %v", len(runner.Calls), runner.CommandLines())
	}

	// UI files use the UI compiler with the exact output path.
	first := runner.Calls[0]
	if first.Name != "pyuic5" {
		t.Errorf("first call binary = %q, want pyuic5", first.Name)
	}
	wantArgs := []string{"-o", cfg.Files[0].Output, cfg.Files[0].Source}
	if len(first.Args) != 3 || first.Args[1] != wantArgs[1] || first.Args[2] != wantArgs[2] {
		t.Errorf("first call args = %v, want %v", first.Args, wantArgs)
	}

	// Resource files use the resource compiler.
	last := runner.Calls[2]
	if last.Name != "pyrcc5" {
		t.Errorf("resource call binary = %q, want pyrcc5", last.Name)
	}

	if len(result.Files) != 3 {
		t.Errorf("result should record 3 files, got %d", len(result.Files))
	}
	if result.Files[0].Output != cfg.Files[0].Output {
		t.Errorf("result output = %q, want %q", result.Files[0].Output, cfg.Files[0].Output)
	}
}

func TestGenerator_Generate_StopsAtFirstFailure(t *testing.T) {
	cfg := testUIConfig(t)
	runner := &testsupport.FakeRunner{
		Handler: func(cmd execx.Cmd) (execx.Result, error) {
			if strings.Contains(cmd.String(), "scenes_view.ui") {
				return execx.Result{ExitCode: 1, Output: "syntax error"}, nil
			}
			return execx.Result{}, nil
		},
	}
	gen := New(cfg, runner)

	result, err := gen.Generate(context.Background())
	if err == nil {
		t.Fatal("Generate() error = nil, want compile failure")
	}
	if !errors.Is(err, deverr.ErrGen) {
		t.Errorf("error should be ErrGen, got %v", err)
	}
	if !strings.Contains(err.Error(), "scenes_view.ui") {
		t.Errorf("error = %v, want failing source named", err)
	}

	// The second file failed, so exactly two invocations happened and the
	// resource compile never ran.
	if len(runner.Calls) != 2 {
		t.Errorf("expected 2 invocations before abort, got %d", len(runner.Calls))
	}
	if len(result.Files) != 1 {
		t.Errorf("expected 1 successful file recorded, got %d", len(result.Files))
	}
}

func TestGenerator_Generate_CreatesOutputDirs(t *testing.T) {
	cfg := testUIConfig(t)
	runner := &testsupport.FakeRunner{}
	gen := New(cfg, runner)

	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	outDir := filepath.Dir(cfg.Files[0].Output)
	if _, err := os.Stat(outDir); err != nil {
		t.Errorf("output directory should exist: %v", err)
	}
}

func TestGenerator_GenerateBatch_WritesConfigAndInvokesOnce(t *testing.T) {
	cfg := testUIConfig(t)
	runner := &testsupport.FakeRunner{}
	gen := New(cfg, runner)

	result, err := gen.GenerateBatch(context.Background())
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}

	if len(runner.Calls) != 1 {
		t.Fatalf("expected single batch invocation, got %d", len(runner.Calls))
	}
	call := runner.Calls[0]
	if call.Name != "pyqt5ac" {
		t.Errorf("batch binary = %q, want pyqt5ac", call.Name)
	}
	if len(call.Args) != 2 || call.Args[0] != "--config" || call.Args[1] != cfg.BatchConfig {
		t.Errorf("batch args = %v, want --config %s", call.Args, cfg.BatchConfig)
	}

	data, err := os.ReadFile(cfg.BatchConfig)
	if err != nil {
		t.Fatalf("batch config should have been written: %v", err)
	}
	for _, pair := range cfg.Files {
		if !strings.Contains(string(data), pair.Source) {
			t.Errorf("batch config should list %q", pair.Source)
		}
	}
	for _, pair := range cfg.Resources {
		if !strings.Contains(string(data), pair.Source) {
			t.Errorf("batch config should list resource %q", pair.Source)
		}
	}

	if !result.Batch {
		t.Error("result should be marked as batch")
	}
	if len(result.Files) != 3 {
		t.Errorf("result should cover all 3 files, got %d", len(result.Files))
	}
}

func TestGenerator_GenerateBatch_FailurePropagates(t *testing.T) {
	cfg := testUIConfig(t)
	runner := &testsupport.FakeRunner{
		Handler: func(cmd execx.Cmd) (execx.Result, error) {
			return execx.Result{ExitCode: 2, Output: "bad config"}, nil
		},
	}
	gen := New(cfg, runner)

	_, err := gen.GenerateBatch(context.Background())
	if err == nil {
		t.Fatal("GenerateBatch() error = nil, want failure")
	}
	if !errors.Is(err, deverr.ErrGen) {
		t.Errorf("error should be ErrGen, got %v", err)
	}
}
