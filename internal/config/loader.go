// Package config provides configuration loading and management for plotdev.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the config file relative
	// to the project root.
	DefaultConfigPath = ".plotdev/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "PLOTDEV"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies
// defaults, merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working
// directory. A missing config file is not an error; the defaults are
// returned so every command works out of the box in the standard
// project layout.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, &LoadError{
				Path:    path,
				Message: "config file not found",
				Err:     err,
			}
		}
		cfg := NewConfig()
		l.applyEnvOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "configuration validation failed",
				Err:     err,
			}
		}
		return cfg, nil
	}

	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	// Start from defaults so partial config files stay usable.
	cfg := NewConfig()

	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .plotdev/config.yaml in the
// specified directory.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return l.LoadConfig("")
	}
	return l.LoadConfig(path)
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// UI settings
	if v := os.Getenv(EnvPrefix + "_UI_COMPILER"); v != "" {
		cfg.UI.Compiler = v
	}
	if v := os.Getenv(EnvPrefix + "_UI_RCC"); v != "" {
		cfg.UI.RCC = v
	}
	if v := os.Getenv(EnvPrefix + "_UI_BATCH_COMPILER"); v != "" {
		cfg.UI.BatchCompiler = v
	}

	// Test settings
	if v := os.Getenv(EnvPrefix + "_TEST_PYTHON"); v != "" {
		cfg.Test.Python = v
	}
	if v := os.Getenv(EnvPrefix + "_TEST_DIR"); v != "" {
		cfg.Test.Dir = v
	}

	// Deps settings
	if v := os.Getenv(EnvPrefix + "_DEPS_PIP"); v != "" {
		cfg.Deps.Pip = v
	}

	// Git settings
	if v := os.Getenv(EnvPrefix + "_GIT_REMOTE"); v != "" {
		cfg.Git.Remote = v
	}
	if v := os.Getenv(EnvPrefix + "_GIT_RELEASE_BRANCH"); v != "" {
		cfg.Git.ReleaseBranch = v
	}
	if v := os.Getenv(EnvPrefix + "_GIT_PRUNE_MONTHS"); v != "" {
		if months, err := strconv.Atoi(v); err == nil {
			cfg.Git.PruneMonths = months
		}
	}

	// Run settings
	if v := os.Getenv(EnvPrefix + "_RUN_PYTHON"); v != "" {
		cfg.Run.Python = v
	}
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// The yaml tags drive field matching so snake_case keys map correctly.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
