package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/plotlyst/plotdev/internal/gitops"
	"github.com/plotlyst/plotdev/internal/logging"
	"github.com/plotlyst/plotdev/internal/tui"
	"github.com/plotlyst/plotdev/internal/tui/styles"
)

// pruneCmd represents the prune command.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete stale local git branches",
	Long: `Delete local branches whose last commit is older than the configured
cutoff (three months by default).

The current branch is never deleted, and branches that still exist on
the remote under the same name are kept regardless of age.

Examples:
  plotdev prune           # List candidates and ask before deleting
  plotdev prune -d        # Dry run, list candidates only
  plotdev prune --fetch   # Refresh remote state first
  plotdev prune -y        # Delete without asking`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().BoolP("dry-run", "d", false, "List stale branches without deleting them")
	pruneCmd.Flags().Bool("fetch", false, "Run git fetch --prune before scanning")
	pruneCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// runPrune handles the prune command.
func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	git := gitops.New("", cfg.Git, localRunner())
	ctx := cmd.Context()

	if !git.IsRepo(ctx) {
		return fmt.Errorf("not a git repository")
	}

	if fetch, _ := cmd.Flags().GetBool("fetch"); fetch {
		cmd.Println("Fetching remote state...")
		if err := git.Fetch(ctx); err != nil {
			return err
		}
	}

	now := time.Now()
	cutoff := gitops.Cutoff(now, cfg.Git.PruneMonths)
	logging.Info("scanning for stale branches", "cutoff", cutoff.Format("2006-01-02"))

	candidates, err := git.StaleBranches(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		cmd.Printf("%s No stale branches found.\n", styles.IconDone)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Branch", "Last Commit", "Age"})
	for _, c := range candidates {
		age := int(c.Age(now).Hours() / 24)
		t.AppendRow(table.Row{c.Name, c.LastCommit.Format("2006-01-02"), fmt.Sprintf("%dd", age)})
	}
	t.Render()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		cmd.Printf("\nDry run: %d branches would be deleted.\n", len(candidates))
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !interactive() {
			return fmt.Errorf("refusing to delete branches without confirmation (use -y)")
		}
		confirmed, err := tui.ConfirmPrune(len(candidates))
		if err != nil {
			return err
		}
		if !confirmed {
			cmd.Println("Prune cancelled.")
			return nil
		}
	}

	if err := git.Prune(ctx, candidates); err != nil {
		logging.Error("prune failed", "error", err)
		return err
	}

	for _, c := range candidates {
		logging.Info("deleted branch", "branch", c.Name)
	}
	cmd.Printf("%s %s\n", styles.IconDone,
		styles.SuccessTextStyle.Render(fmt.Sprintf("Deleted %d branches.", len(candidates))))
	return nil
}
