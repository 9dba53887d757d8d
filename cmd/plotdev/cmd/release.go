package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	deverr "github.com/plotlyst/plotdev/internal/errors"
	"github.com/plotlyst/plotdev/internal/gitops"
	"github.com/plotlyst/plotdev/internal/logging"
	"github.com/plotlyst/plotdev/internal/tui/styles"
)

// releaseCmd represents the release command.
var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Promote the mainline into the release branch",
	Long: `Merge the mainline branch into the release branch and push it.

The release branch is checked out, the source branch is merged into it,
and the result is pushed to the remote. If the merge reports conflicts
the promotion is aborted before anything is pushed, the merge output is
printed, and the checkout returns to the source branch.

Examples:
  plotdev release                      # Merge main into beta and push
  plotdev release --from main --to rc  # Override the branches`,
	RunE: runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().String("from", "", "Source branch (default from config)")
	releaseCmd.Flags().String("to", "", "Release branch (default from config)")
}

// runRelease handles the release command.
func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	if from == "" {
		from = cfg.Git.MainBranch
	}
	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		to = cfg.Git.ReleaseBranch
	}

	git := gitops.New("", cfg.Git, localRunner())
	ctx := cmd.Context()

	if !git.IsRepo(ctx) {
		return errors.New("not a git repository")
	}

	cmd.Printf("Promoting %s into %s...\n", from, to)
	logging.Info("promoting release", "from", from, "to", to, "remote", cfg.Git.Remote)

	result, err := git.Promote(ctx, from, to)
	if err != nil {
		var devErr *deverr.DevError
		if errors.As(err, &devErr) && result != nil && result.MergeOutput != "" {
			cmd.Println("")
			cmd.Println(styles.ErrorTextStyle.Render("Merge reported conflicts:"))
			cmd.Println(result.MergeOutput)
		}
		logging.Error("promotion failed", "error", err)
		return err
	}

	cmd.Printf("%s %s\n", styles.IconDone,
		styles.SuccessTextStyle.Render("Pushed "+to+" to "+cfg.Git.Remote+"."))
	return nil
}
