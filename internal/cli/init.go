package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/git-aiadd/internal/engine"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed default .gitignore and ai.gitignore files",
	Long: `Seed every workspace under the current directory with default ignore files.

A missing .gitignore is created with common defaults; an existing one gains the
"ai.gitignore" entry. A missing ai.gitignore is created with common model,
checkpoint and dataset patterns, which also switches the workspace into AI
development mode. Existing ai.gitignore files are left alone.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	eng, cwd, err := newEngine(cmd)
	if err != nil {
		return err
	}

	result, err := eng.Init(context.Background(), &engine.InitRequest{CWD: cwd})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	for _, change := range result.Workspaces {
		where := displayPath(cwd, change.Dir)
		if !change.CreatedGitignore && !change.AddedReference && !change.CreatedAIGitignore {
			PrintEmptyState(fmt.Sprintf("%s: already initialized", where))
			continue
		}
		PrintWorkspace(where)
		if change.CreatedGitignore {
			PrintSuccess("Created .gitignore")
		}
		if change.AddedReference {
			PrintSuccess("Added ai.gitignore to .gitignore")
		}
		if change.CreatedAIGitignore {
			PrintSuccess("Created ai.gitignore")
		}
	}

	PrintSteps([]string{
		"Review the patterns in ai.gitignore",
		"Stage your changes:  git aiadd .",
		"Leave AI mode:       git aiadd off",
	})
	return nil
}
