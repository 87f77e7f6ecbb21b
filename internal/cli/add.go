package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/git-aiadd/internal/engine"
)

func runAdd(cmd *cobra.Command, args []string) error {
	eng, cwd, err := newEngine(cmd)
	if err != nil {
		return err
	}

	req := &engine.AddRequest{
		CWD:   cwd,
		Paths: args,
	}

	result, err := eng.Add(context.Background(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(result)
	}

	if result.Mode == engine.ModeNormal {
		PrintSuccess(fmt.Sprintf("Staged %s", strings.Join(result.Staged, " ")))
		return nil
	}

	if len(result.Staged) == 0 {
		PrintEmptyState("Nothing to stage")
	} else {
		PrintSuccess(fmt.Sprintf("Staged %s in AI mode", countOf(len(result.Staged), "file")))
	}

	if len(result.Skipped) > 0 {
		PrintWarning(fmt.Sprintf("Skipped %s matching AI patterns:", countOf(len(result.Skipped), "file")))
		items := make([]string, len(result.Skipped))
		for i, skip := range result.Skipped {
			items[i] = fmt.Sprintf("%s (%s)", skip.Path, skip.Pattern)
		}
		PrintPaths(items)
	}
	return nil
}
