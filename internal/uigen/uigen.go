// Package uigen generates Python UI code from Qt Designer files.
// It wraps the external Qt compilers: pyuic5 for .ui files, pyrcc5 for
// .qrc resource files, and pyqt5ac for single-invocation batch runs.
package uigen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plotlyst/plotdev/internal/config"
	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/execx"
)

// FileResult records the outcome of compiling a single file.
type FileResult struct {
	// Source is the input .ui or .qrc file.
	Source string
	// Output is the generated file path.
	Output string
	// Duration is how long the compiler ran.
	Duration time.Duration
}

// Result contains the outcome of a generation run.
type Result struct {
	// Files are the successfully generated files, in compile order.
	Files []FileResult
	// Batch indicates the run used the batch compiler.
	Batch bool
}

// Generator compiles the configured UI and resource files.
type Generator struct {
	cfg    config.UIConfig
	runner execx.Runner
}

// New creates a Generator for the given UI configuration.
func New(cfg config.UIConfig, runner execx.Runner) *Generator {
	return &Generator{cfg: cfg, runner: runner}
}

// Generate compiles every configured UI file, then every resource file,
// one compiler invocation per file. It stops at the first failure.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	result := &Result{}

	for _, pair := range g.cfg.Files {
		fr, err := g.compile(ctx, g.cfg.Compiler, pair)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, fr)
	}

	for _, pair := range g.cfg.Resources {
		fr, err := g.compile(ctx, g.cfg.RCC, pair)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, fr)
	}

	return result, nil
}

// compile runs one compiler invocation for a source/output pair.
func (g *Generator) compile(ctx context.Context, compiler string, pair config.FilePair) (FileResult, error) {
	if err := os.MkdirAll(filepath.Dir(pair.Output), 0755); err != nil {
		return FileResult{}, fmt.Errorf("failed to create output directory for %s: %w", pair.Output, err)
	}

	res, err := g.runner.Exec(ctx, execx.Cmd{
		Name: compiler,
		Args: []string{"-o", pair.Output, pair.Source},
	})
	if err != nil {
		return FileResult{}, deverr.Wrap(err, deverr.ErrGen, fmt.Sprintf("failed to invoke %s", compiler))
	}
	if !res.Success() {
		return FileResult{}, deverr.CompileFailed(compiler, pair.Source, res.ExitCode).
			WithDetails("output", res.Output)
	}

	return FileResult{
		Source:   pair.Source,
		Output:   pair.Output,
		Duration: res.Duration,
	}, nil
}

// batchConfig is the pyqt5ac configuration document. pyqt5ac consumes a
// YAML file listing ioPaths of source/destination expressions.
type batchConfig struct {
	UicOptions string      `yaml:"uic_options"`
	RccOptions string      `yaml:"rcc_options"`
	IOPaths    [][2]string `yaml:"ioPaths"`
}

// GenerateBatch writes a pyqt5ac config covering all configured files
// and invokes the batch compiler once.
func (g *Generator) GenerateBatch(ctx context.Context) (*Result, error) {
	doc := batchConfig{}
	for _, pair := range g.cfg.Files {
		doc.IOPaths = append(doc.IOPaths, [2]string{pair.Source, pair.Output})
	}
	for _, pair := range g.cfg.Resources {
		doc.IOPaths = append(doc.IOPaths, [2]string{pair.Source, pair.Output})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, deverr.Wrap(err, deverr.ErrGen, "failed to marshal batch config")
	}

	if err := os.MkdirAll(filepath.Dir(g.cfg.BatchConfig), 0755); err != nil {
		return nil, fmt.Errorf("failed to create batch config directory: %w", err)
	}
	if err := os.WriteFile(g.cfg.BatchConfig, data, 0644); err != nil {
		return nil, deverr.Wrap(err, deverr.ErrGen, "failed to write batch config")
	}

	res, err := g.runner.Exec(ctx, execx.Cmd{
		Name: g.cfg.BatchCompiler,
		Args: []string{"--config", g.cfg.BatchConfig},
	})
	if err != nil {
		return nil, deverr.Wrap(err, deverr.ErrGen, fmt.Sprintf("failed to invoke %s", g.cfg.BatchCompiler))
	}
	if !res.Success() {
		return nil, deverr.New(deverr.ErrGen, fmt.Sprintf("%s exited with status %d", g.cfg.BatchCompiler, res.ExitCode)).
			WithDetails("output", res.Output)
	}

	result := &Result{Batch: true}
	for _, io := range doc.IOPaths {
		result.Files = append(result.Files, FileResult{Source: io[0], Output: io[1]})
	}
	return result, nil
}
