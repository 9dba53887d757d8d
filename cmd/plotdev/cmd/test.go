package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plotlyst/plotdev/internal/logging"
	"github.com/plotlyst/plotdev/internal/pytest"
	"github.com/plotlyst/plotdev/internal/tui/styles"
	"github.com/plotlyst/plotdev/internal/uigen"
)

// testCmd represents the test command.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the test suite with coverage",
	Long: `Run the Plotlyst test suite under pytest with coverage measurement.

UI code is regenerated first so tests never run against stale generated
views; use --no-gen to skip that step. Coverage is written as an XML
report and an HTML report directory.

Examples:
  plotdev test           # Regenerate UI code, then run the suite
  plotdev test --no-gen  # Run the suite against existing generated code`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().Bool("no-gen", false, "Skip UI code generation before testing")
}

// runTest handles the test command.
func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runner := localRunner()

	noGen, _ := cmd.Flags().GetBool("no-gen")
	if !noGen {
		cmd.Println("Regenerating UI code...")
		if _, err := uigen.New(cfg.UI, runner).Generate(cmd.Context()); err != nil {
			return err
		}
	}

	cmd.Println("Running test suite...")
	logging.Info("running tests", "dir", cfg.Test.Dir, "coverage", cfg.Test.CoverageModule)

	result, err := pytest.New(cfg.Test, cfg.Run.SourceRoot, runner).Run(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println("")
	if resultErr := result.Err(); resultErr != nil {
		cmd.Printf("%s %d of %d tests failed\n", styles.IconFailed, result.Failed+result.Errors, result.Total())
		return resultErr
	}

	summary := fmt.Sprintf("%d passed", result.Passed)
	if result.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", result.Skipped)
	}
	cmd.Printf("%s %s\n", styles.IconDone, styles.SuccessTextStyle.Render(summary))
	cmd.Printf("Coverage: %s, %s/\n", cfg.Test.XMLReport, cfg.Test.HTMLReportDir)

	return nil
}
