package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/git-aiadd/internal/engine"
)

var statusAll bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show AI development mode status",
	Long: `Display whether AI development mode is enabled for the current directory.

With --all, list every discovered workspace.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cwd, err := newEngine(cmd)
		if err != nil {
			return err
		}

		req := &engine.StatusRequest{
			CWD: cwd,
			All: statusAll,
		}

		result, err := eng.Status(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintLabelValue("Directory", cwd, dimColor)
		PrintMode(result.Enabled)

		if !statusAll {
			return nil
		}

		PrintSection("Workspaces")
		if len(result.Workspaces) == 0 {
			PrintEmptyState("No workspaces found")
			return nil
		}

		rows := make([][]string, 0, len(result.Workspaces))
		for _, ws := range result.Workspaces {
			mode := "off"
			if ws.Enabled {
				mode = "on"
			}
			section := "-"
			if ws.HasSection {
				section = "yes"
			}
			rows = append(rows, []string{
				displayPath(cwd, ws.Dir),
				ws.Source,
				mode,
				strconv.Itoa(ws.Patterns),
				section,
			})
		}
		PrintTable([]string{"WORKSPACE", "SOURCE", "AI MODE", "PATTERNS", "SECTION"}, rows)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVarP(&statusAll, "all", "a", false, "Show every discovered workspace")
}
