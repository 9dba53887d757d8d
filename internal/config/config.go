// Package config provides configuration data structures for plotdev.
package config

import "strconv"

// Config represents the complete plotdev configuration loaded from
// .plotdev/config.yaml. Every section maps to one of the tool's
// workflows: UI code generation, test running, dependency refresh,
// git maintenance, and launching the application.
type Config struct {
	UI   UIConfig   `yaml:"ui"   json:"ui"`
	Test TestConfig `yaml:"test" json:"test"`
	Deps DepsConfig `yaml:"deps" json:"deps"`
	Git  GitConfig  `yaml:"git"  json:"git"`
	Run  RunConfig  `yaml:"run"  json:"run"`
}

// FilePair maps a Qt Designer source file to its generated output file.
type FilePair struct {
	// Source is the .ui or .qrc file consumed by the compiler.
	Source string `yaml:"source" json:"source"`
	// Output is the generated Python file written by the compiler.
	Output string `yaml:"output" json:"output"`
}

// UIConfig configures UI and resource code generation.
type UIConfig struct {
	// Compiler is the per-file UI compiler binary (default: pyuic5).
	Compiler string `yaml:"compiler" json:"compiler"`
	// RCC is the per-file resource compiler binary (default: pyrcc5).
	RCC string `yaml:"rcc" json:"rcc"`
	// BatchCompiler is the batch compiler binary invoked once with a
	// generated config covering all files (default: pyqt5ac).
	BatchCompiler string `yaml:"batch_compiler" json:"batch_compiler"`
	// BatchConfig is where the generated batch config is written.
	BatchConfig string `yaml:"batch_config" json:"batch_config"`
	// Files are the enumerated .ui -> .py pairs.
	Files []FilePair `yaml:"files" json:"files"`
	// Resources are the enumerated .qrc -> .py pairs.
	Resources []FilePair `yaml:"resources" json:"resources"`
}

// TestConfig configures the pytest invocation.
type TestConfig struct {
	// Python is the interpreter used to run pytest (default: python3).
	Python string `yaml:"python" json:"python"`
	// Dir is the test directory passed to pytest.
	Dir string `yaml:"dir" json:"dir"`
	// CoverageModule is the module measured by pytest-cov.
	CoverageModule string `yaml:"coverage_module" json:"coverage_module"`
	// XMLReport is the coverage XML report path.
	XMLReport string `yaml:"xml_report" json:"xml_report"`
	// HTMLReportDir is the HTML coverage report directory.
	HTMLReportDir string `yaml:"html_report_dir" json:"html_report_dir"`
	// Env holds extra KEY=VALUE pairs for the test process.
	Env []string `yaml:"env" json:"env"`
}

// Package is a pip package refreshed by "deps refresh".
// The same entry drives both the uninstall and the install phase, so
// the two sets cannot drift apart.
type Package struct {
	// Name is the pip distribution name used for uninstall.
	Name string `yaml:"name" json:"name"`
	// Source is the install source, typically a git+https URL.
	Source string `yaml:"source" json:"source"`
}

// DepsConfig configures the dependency refresh.
type DepsConfig struct {
	// Pip is the pip binary (default: pip3).
	Pip string `yaml:"pip" json:"pip"`
	// Packages are the enumerated packages to uninstall and reinstall.
	Packages []Package `yaml:"packages" json:"packages"`
}

// GitConfig configures git maintenance.
type GitConfig struct {
	// Remote is the remote queried and pushed to (default: origin).
	Remote string `yaml:"remote" json:"remote"`
	// MainBranch is the mainline development branch (default: main).
	MainBranch string `yaml:"main_branch" json:"main_branch"`
	// ReleaseBranch is the pre-production branch updated by "release"
	// (default: beta).
	ReleaseBranch string `yaml:"release_branch" json:"release_branch"`
	// PruneMonths is the stale-branch cutoff in months (default: 3).
	PruneMonths int `yaml:"prune_months" json:"prune_months"`
}

// RunConfig configures launching the application.
type RunConfig struct {
	// Python is the interpreter used to launch the app (default: python3).
	Python string `yaml:"python" json:"python"`
	// SourceRoot is prepended to PYTHONPATH (default: src/main/python).
	SourceRoot string `yaml:"source_root" json:"source_root"`
	// Entry is the module launched with python -m (default: plotlyst).
	Entry string `yaml:"entry" json:"entry"`
	// ProfileStats is where cProfile statistics are written in
	// profiling mode.
	ProfileStats string `yaml:"profile_stats" json:"profile_stats"`
}

// Default values.
const (
	DefaultUICompiler    = "pyuic5"
	DefaultRCC           = "pyrcc5"
	DefaultBatchCompiler = "pyqt5ac"
	DefaultBatchConfig   = ".plotdev/pyqt5ac.yml"
	DefaultPython        = "python3"
	DefaultPip           = "pip3"
	DefaultTestDir       = "src/main/python/plotlyst/test"
	DefaultCovModule     = "src/main/python/plotlyst"
	DefaultXMLReport     = "coverage.xml"
	DefaultHTMLReportDir = "htmlcov"
	DefaultRemote        = "origin"
	DefaultMainBranch    = "main"
	DefaultReleaseBranch = "beta"
	DefaultPruneMonths   = 3
	DefaultSourceRoot    = "src/main/python"
	DefaultEntry         = "plotlyst"
	DefaultProfileStats  = "profile.stats"
	DefaultGeneratedDir  = "src/main/python/plotlyst/view/generated"
	DefaultUIDir         = "ui"
)

// defaultViews are the Qt Designer files shipped with the application.
// Each compiles to <name>_ui.py in the generated view package.
var defaultViews = []string{
	"main_window",
	"novel_view",
	"characters_view",
	"character_editor",
	"scenes_view",
	"scene_editor",
	"notes_view",
	"reports_view",
	"timeline_view",
	"tasks_view",
}

// defaultPackages are the in-house Qt helper libraries reinstalled from
// their git sources by "deps refresh".
var defaultPackages = []Package{
	{Name: "qthandy", Source: "git+https://github.com/zkovari/qthandy.git"},
	{Name: "qtanim", Source: "git+https://github.com/zkovari/qtanim.git"},
	{Name: "qtmenu", Source: "git+https://github.com/zkovari/qtmenu.git"},
	{Name: "qttextedit", Source: "git+https://github.com/zkovari/qttextedit.git"},
}

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		UI: UIConfig{
			Compiler:      DefaultUICompiler,
			RCC:           DefaultRCC,
			BatchCompiler: DefaultBatchCompiler,
			BatchConfig:   DefaultBatchConfig,
			Files:         DefaultUIFiles(),
			Resources: []FilePair{
				{
					Source: "ui/resources.qrc",
					Output: "src/main/python/plotlyst/resources.py",
				},
			},
		},
		Test: TestConfig{
			Python:         DefaultPython,
			Dir:            DefaultTestDir,
			CoverageModule: DefaultCovModule,
			XMLReport:      DefaultXMLReport,
			HTMLReportDir:  DefaultHTMLReportDir,
			Env:            []string{},
		},
		Deps: DepsConfig{
			Pip:      DefaultPip,
			Packages: DefaultPackages(),
		},
		Git: GitConfig{
			Remote:        DefaultRemote,
			MainBranch:    DefaultMainBranch,
			ReleaseBranch: DefaultReleaseBranch,
			PruneMonths:   DefaultPruneMonths,
		},
		Run: RunConfig{
			Python:       DefaultPython,
			SourceRoot:   DefaultSourceRoot,
			Entry:        DefaultEntry,
			ProfileStats: DefaultProfileStats,
		},
	}
}

// DefaultUIFiles returns the enumerated view file pairs for the default
// project layout.
func DefaultUIFiles() []FilePair {
	pairs := make([]FilePair, 0, len(defaultViews))
	for _, view := range defaultViews {
		pairs = append(pairs, FilePair{
			Source: DefaultUIDir + "/" + view + ".ui",
			Output: DefaultGeneratedDir + "/" + view + "_ui.py",
		})
	}
	return pairs
}

// DefaultPackages returns a copy of the default refresh package list.
func DefaultPackages() []Package {
	pkgs := make([]Package, len(defaultPackages))
	copy(pkgs, defaultPackages)
	return pkgs
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.UI.Compiler == "" {
		c.UI.Compiler = defaults.UI.Compiler
	}
	if c.UI.RCC == "" {
		c.UI.RCC = defaults.UI.RCC
	}
	if c.UI.BatchCompiler == "" {
		c.UI.BatchCompiler = defaults.UI.BatchCompiler
	}
	if c.UI.BatchConfig == "" {
		c.UI.BatchConfig = defaults.UI.BatchConfig
	}
	if c.UI.Files == nil {
		c.UI.Files = defaults.UI.Files
	}
	if c.UI.Resources == nil {
		c.UI.Resources = defaults.UI.Resources
	}

	if c.Test.Python == "" {
		c.Test.Python = defaults.Test.Python
	}
	if c.Test.Dir == "" {
		c.Test.Dir = defaults.Test.Dir
	}
	if c.Test.CoverageModule == "" {
		c.Test.CoverageModule = defaults.Test.CoverageModule
	}
	if c.Test.XMLReport == "" {
		c.Test.XMLReport = defaults.Test.XMLReport
	}
	if c.Test.HTMLReportDir == "" {
		c.Test.HTMLReportDir = defaults.Test.HTMLReportDir
	}
	if c.Test.Env == nil {
		c.Test.Env = []string{}
	}

	if c.Deps.Pip == "" {
		c.Deps.Pip = defaults.Deps.Pip
	}
	if c.Deps.Packages == nil {
		c.Deps.Packages = defaults.Deps.Packages
	}

	if c.Git.Remote == "" {
		c.Git.Remote = defaults.Git.Remote
	}
	if c.Git.MainBranch == "" {
		c.Git.MainBranch = defaults.Git.MainBranch
	}
	if c.Git.ReleaseBranch == "" {
		c.Git.ReleaseBranch = defaults.Git.ReleaseBranch
	}
	if c.Git.PruneMonths == 0 {
		c.Git.PruneMonths = defaults.Git.PruneMonths
	}

	if c.Run.Python == "" {
		c.Run.Python = defaults.Run.Python
	}
	if c.Run.SourceRoot == "" {
		c.Run.SourceRoot = defaults.Run.SourceRoot
	}
	if c.Run.Entry == "" {
		c.Run.Entry = defaults.Run.Entry
	}
	if c.Run.ProfileStats == "" {
		c.Run.ProfileStats = defaults.Run.ProfileStats
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	for i, pair := range c.UI.Files {
		if pair.Source == "" || pair.Output == "" {
			errs = append(errs, &ValidationError{
				Field:   "ui.files[" + strconv.Itoa(i) + "]",
				Message: "must have both source and output",
			})
		}
	}
	for i, pair := range c.UI.Resources {
		if pair.Source == "" || pair.Output == "" {
			errs = append(errs, &ValidationError{
				Field:   "ui.resources[" + strconv.Itoa(i) + "]",
				Message: "must have both source and output",
			})
		}
	}

	for i, pkg := range c.Deps.Packages {
		if pkg.Name == "" {
			errs = append(errs, &ValidationError{
				Field:   "deps.packages[" + strconv.Itoa(i) + "]",
				Message: "must have a name",
			})
		}
		if pkg.Source == "" {
			errs = append(errs, &ValidationError{
				Field:   "deps.packages[" + strconv.Itoa(i) + "]",
				Message: "must have a source",
			})
		}
	}

	if c.Git.PruneMonths < 0 {
		errs = append(errs, &ValidationError{
			Field:   "git.prune_months",
			Message: "must be non-negative",
		})
	}
	if c.Git.ReleaseBranch != "" && c.Git.ReleaseBranch == c.Git.MainBranch {
		errs = append(errs, &ValidationError{
			Field:   "git.release_branch",
			Message: "must differ from git.main_branch",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
