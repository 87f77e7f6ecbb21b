package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/git-aiadd/internal/config"
	"github.com/danieljhkim/git-aiadd/internal/engine"
	"github.com/danieljhkim/git-aiadd/internal/fsops"
	"github.com/danieljhkim/git-aiadd/internal/gitx"
)

// newEngine creates a new engine with real implementations of all
// dependencies, configured for the current directory. It returns the engine
// and the current directory.
func newEngine(cmd *cobra.Command) (*engine.Engine, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	settings, err := loadSettings(cmd, cwd)
	if err != nil {
		return nil, "", err
	}

	fs := fsops.NewRealFS()
	gitRepo := gitx.NewRealGitRepo()

	return engine.New(gitRepo, fs, logger, settings), cwd, nil
}

// loadSettings reads .aiadd.yaml from dir and applies flag overrides.
func loadSettings(cmd *cobra.Command, dir string) (config.Settings, error) {
	settings, err := config.Load(dir)
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("discovery") {
		settings.Discovery = discoveryFlag
	}
	if flags.Changed("batch-size") {
		settings.BatchSize = batchSizeFlag
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid flags: %w", err)
	}
	return settings, nil
}

// displayPath renders path relative to base when it lies beneath it.
func displayPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
