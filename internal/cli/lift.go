package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/git-aiadd/internal/engine"
)

var liftCmd = &cobra.Command{
	Use:   "lift [paths...]",
	Short: "Stage with the AI section lifted, then unstage AI files",
	Long: `Run git add with the AI section of the repository .gitignore temporarily removed.

Anything staged that matches one of the lifted patterns is unstaged again, and
.gitignore is restored from .gitignore.bak whether or not git add succeeds.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cwd, err := newEngine(cmd)
		if err != nil {
			return err
		}

		result, err := eng.Lift(context.Background(), &engine.LiftRequest{CWD: cwd, Paths: args})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if !result.Lifted {
			PrintInfo("No AI section to lift; staged as usual")
			return nil
		}
		PrintSuccess("Staged with the AI section lifted")
		if len(result.Unstaged) > 0 {
			PrintWarning(fmt.Sprintf("Unstaged %s matching AI patterns:", countOf(len(result.Unstaged), "file")))
			PrintPaths(result.Unstaged)
		}
		return nil
	},
}
