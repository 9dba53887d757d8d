package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plotlyst/plotdev/internal/logging"
	"github.com/plotlyst/plotdev/internal/tui/styles"
	"github.com/plotlyst/plotdev/internal/uigen"
)

// genCmd represents the gen command.
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate Python UI code from Qt Designer files",
	Long: `Generate Python UI code from the configured Qt Designer files.

By default each .ui and .qrc file is compiled with its own pyuic5 or
pyrcc5 invocation. With --batch a pyqt5ac config covering all files is
written and the batch compiler is invoked once.

Examples:
  plotdev gen          # Compile each file individually
  plotdev gen --batch  # Single batch compiler run`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().BoolP("batch", "b", false, "Use the batch compiler (pyqt5ac)")
}

// runGen handles the gen command.
func runGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	batch, _ := cmd.Flags().GetBool("batch")
	gen := uigen.New(cfg.UI, localRunner())

	var result *uigen.Result
	if batch {
		logging.Info("generating UI code", "mode", "batch", "compiler", cfg.UI.BatchCompiler)
		result, err = gen.GenerateBatch(cmd.Context())
	} else {
		logging.Info("generating UI code", "mode", "per-file", "compiler", cfg.UI.Compiler)
		result, err = gen.Generate(cmd.Context())
	}
	if err != nil {
		logging.Error("UI generation failed", "error", err)
		return err
	}

	for _, file := range result.Files {
		cmd.Printf("%s %s -> %s\n", styles.IconDone, file.Source, file.Output)
	}
	cmd.Println("")
	cmd.Println(styles.SuccessTextStyle.Render(fmt.Sprintf("Generated %d files.", len(result.Files))))

	return nil
}
