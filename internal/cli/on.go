package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/git-aiadd/internal/engine"
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable AI development mode",
	Long: `Enable AI development mode in every workspace under the current directory.

The AI section of each .gitignore moves to ai.gitignore and .gitignore keeps a
single "ai.gitignore" entry. Workspaces without an AI section get an empty
ai.gitignore.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cwd, err := newEngine(cmd)
		if err != nil {
			return err
		}

		result, err := eng.On(context.Background(), &engine.ModeRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printModeResult(cwd, result)
		return nil
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable AI development mode",
	Long: `Disable AI development mode in every workspace where it is enabled.

The lines of ai.gitignore are merged back into .gitignore as the AI section and
ai.gitignore is removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cwd, err := newEngine(cmd)
		if err != nil {
			return err
		}

		result, err := eng.Off(context.Background(), &engine.ModeRequest{CWD: cwd})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printModeResult(cwd, result)
		return nil
	},
}

func printModeResult(cwd string, result *engine.ModeResult) {
	if len(result.Workspaces) == 0 {
		PrintWarning("No workspaces found")
		return
	}

	for _, ws := range result.Workspaces {
		where := displayPath(cwd, ws.Dir)
		switch ws.Action {
		case engine.ActionEnabled:
			PrintSuccess(fmt.Sprintf("AI development mode enabled in %s (%s)", where, countOf(ws.Patterns, "pattern")))
		case engine.ActionDisabled:
			PrintSuccess(fmt.Sprintf("AI development mode disabled in %s (%s)", where, countOf(ws.Patterns, "pattern")))
		case engine.ActionAlreadyEnabled:
			PrintInfo(fmt.Sprintf("AI development mode already enabled in %s", where))
		case engine.ActionNotEnabled:
			PrintEmptyState(fmt.Sprintf("%s: not in AI mode", where))
		case engine.ActionNoGitignore:
			PrintEmptyState(fmt.Sprintf("%s: no .gitignore", where))
		}
	}
}
