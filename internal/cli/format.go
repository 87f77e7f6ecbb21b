package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Narration goes to color's writers, which strip escapes on terminals that
// cannot render them. Tests swap these for buffers.
var (
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// FormatError renders err the way every git-aiadd failure is reported.
func FormatError(err error) string {
	return errorColor.Sprintf("✗ Error: %v", err)
}

// PrintError reports err on stderr.
func PrintError(err error) {
	_, _ = fmt.Fprintln(stderr, FormatError(err))
}

// PrintSection prints a section header surrounded by blank lines.
func PrintSection(title string) {
	_, _ = headerColor.Fprintf(stdout, "\n▸ %s\n\n", title)
}

// PrintWorkspace prints the heading for one workspace's changes.
func PrintWorkspace(dir string) {
	_, _ = infoColor.Fprintf(stdout, "  %s\n", dir)
}

func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout, "✓ %s\n", msg)
}

func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout, "⚠ %s\n", msg)
}

func PrintInfo(msg string) {
	_, _ = fmt.Fprintln(stdout, msg)
}

// PrintEmptyState prints a dimmed line for a workspace or list with nothing
// to report.
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(stdout, "  %s\n", msg)
}

// PrintPaths prints repository paths as an indented bullet list.
func PrintPaths(paths []string) {
	for _, p := range paths {
		_, _ = infoColor.Fprintf(stdout, "  • %s\n", p)
	}
}

// PrintSteps prints a numbered list of follow-up commands.
func PrintSteps(steps []string) {
	_, _ = fmt.Fprintln(stdout)
	PrintInfo("Next steps:")
	for i, step := range steps {
		_, _ = infoColor.Fprintf(stdout, "  %d. %s\n", i+1, step)
	}
}

// PrintLabelValue prints "label: value" with value in valueClr.
func PrintLabelValue(label, value string, valueClr *color.Color) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueClr.Fprintln(stdout, value)
}

// PrintMode prints whether AI development mode is enabled.
func PrintMode(enabled bool) {
	if enabled {
		PrintLabelValue("AI development mode", "enabled", successColor)
		return
	}
	PrintLabelValue("AI development mode", "disabled", dimColor)
}

// PrintTable prints rows under headers in padded columns. Cells beyond the
// header count are dropped.
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	line := func(cells []string, clr *color.Color) {
		padded := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		_, _ = clr.Fprintf(stdout, "  %s\n", strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	line(headers, headerColor)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	line(rules, dimColor)
	for _, row := range rows {
		line(row, labelColor)
	}
}

// countOf renders n with noun, adding an "s" unless n is one.
func countOf(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
