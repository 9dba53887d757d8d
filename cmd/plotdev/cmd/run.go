package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/plotlyst/plotdev/internal/applaunch"
	"github.com/plotlyst/plotdev/internal/logging"
	"github.com/plotlyst/plotdev/internal/tui/styles"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the Plotlyst application",
	Long: `Launch the Plotlyst application from the source tree and wait for
it to exit. Its exit code becomes plotdev's exit code.

With --profile the application runs under cProfile and the statistics
are written to the configured stats file when it exits.

Examples:
  plotdev run             # Launch the application
  plotdev run --profile   # Launch under cProfile`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("profile", "p", false, "Run under cProfile and write a stats file")
}

// runRun handles the run command.
func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	profile, _ := cmd.Flags().GetBool("profile")
	launcher := applaunch.New(cfg.Run, "")

	if profile {
		cmd.Printf("Launching %s under cProfile...\n", cfg.Run.Entry)
	} else {
		cmd.Printf("Launching %s...\n", cfg.Run.Entry)
	}
	logging.Info("launching application", "entry", cfg.Run.Entry, "profile", profile)

	result, err := launcher.Run(cmd.Context(), profile)
	if err != nil {
		logging.Error("launch failed", "error", err)
		return err
	}

	logging.Info("application exited", "exit_code", result.ExitCode, "duration", result.Duration)

	if result.StatsFile != "" {
		cmd.Printf("%s Profile statistics written to %s\n", styles.IconDone, result.StatsFile)
	}

	if result.ExitCode != 0 {
		logging.CloseGlobal()
		os.Exit(result.ExitCode)
	}
	return nil
}
