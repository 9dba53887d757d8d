package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/plotlyst/plotdev/internal/config"
	"github.com/plotlyst/plotdev/internal/logging"
	"github.com/plotlyst/plotdev/internal/pip"
	"github.com/plotlyst/plotdev/internal/tui"
	"github.com/plotlyst/plotdev/internal/tui/styles"
)

// depsCmd groups the dependency commands.
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Manage the in-house Qt helper packages",
	Long: `Commands for the in-house Qt helper packages (qthandy, qtanim,
qtmenu, qttextedit) that Plotlyst installs from their git sources.`,
}

// depsRefreshCmd represents the deps refresh command.
var depsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Uninstall and reinstall all helper packages",
	Long: `Uninstall every configured helper package, then reinstall each one
from its git source. Packages that are not currently installed are
skipped during the uninstall phase; any other failure aborts the
refresh immediately.

Examples:
  plotdev deps refresh      # Ask for confirmation first
  plotdev deps refresh -y   # Refresh without asking`,
	RunE: runDepsRefresh,
}

// depsListCmd represents the deps list command.
var depsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured helper packages",
	RunE:  runDepsList,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.AddCommand(depsRefreshCmd)
	depsCmd.AddCommand(depsListCmd)

	depsRefreshCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// runDepsRefresh handles the deps refresh command.
func runDepsRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	refresher := pip.New(cfg.Deps, localRunner())
	packages := refresher.Packages()
	if len(packages) == 0 {
		cmd.Println("No packages configured.")
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && interactive() {
		confirmed, err := tui.ConfirmRefresh(len(packages))
		if err != nil {
			return err
		}
		if !confirmed {
			cmd.Println("Refresh cancelled.")
			return nil
		}
	}

	logging.Info("refreshing dependencies", "packages", len(packages), "pip", cfg.Deps.Pip)

	if interactive() {
		err = tui.RunWithSpinner("Refreshing dependencies...", func(setStatus func(string)) error {
			refresher.OnPackage = func(phase string, pkg config.Package) {
				setStatus(fmt.Sprintf("%sing %s", phase, pkg.Name))
				logging.Debug("package operation", "phase", phase, "package", pkg.Name)
			}
			return refresher.Refresh(cmd.Context())
		})
	} else {
		refresher.OnPackage = func(phase string, pkg config.Package) {
			cmd.Printf("%sing %s\n", phase, pkg.Name)
		}
		err = refresher.Refresh(cmd.Context())
	}
	if err != nil {
		logging.Error("dependency refresh failed", "error", err)
		return err
	}

	cmd.Printf("%s %s\n", styles.IconDone,
		styles.SuccessTextStyle.Render(fmt.Sprintf("Refreshed %d packages.", len(packages))))
	return nil
}

// runDepsList handles the deps list command.
func runDepsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Package", "Source"})
	for _, pkg := range cfg.Deps.Packages {
		t.AppendRow(table.Row{pkg.Name, pkg.Source})
	}
	t.Render()

	return nil
}
