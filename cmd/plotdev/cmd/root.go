// Package cmd provides the CLI commands for plotdev.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plotlyst/plotdev/internal/config"
	"github.com/plotlyst/plotdev/internal/execx"
	"github.com/plotlyst/plotdev/internal/logging"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "plotdev",
	Short: "Plotdev - development workflows for the Plotlyst application",
	Long: `Plotdev bundles the day-to-day development workflows for the
Plotlyst novel writing application:

  - generating Python UI code from Qt Designer files
  - running the test suite with coverage reports
  - refreshing the in-house Qt helper packages from their git sources
  - pruning stale local git branches
  - promoting the mainline into the release branch
  - launching the application, optionally under a profiler

Configuration is read from .plotdev/config.yaml; every command works
without one in the standard project layout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		logCfg := logging.DefaultConfig()
		logCfg.Console = false
		if verbose {
			logCfg.Level = logging.LevelDebug
		}
		if err := logging.InitGlobal(logCfg); err != nil {
			// Logging is best effort; commands still work without a log dir.
			logging.SetGlobal(logging.NewNoop())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseGlobal()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("plotdev {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default .plotdev/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadConfig loads the configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.NewLoader().LoadConfig(path)
}

// localRunner returns the runner used to invoke external tools.
func localRunner() execx.Runner {
	return &execx.Local{}
}

// interactive reports whether stdin is a terminal. Prompts and spinners
// are skipped in scripts and CI.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
