// Package engine provides the core business logic for git-aiadd operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It coordinates workspace discovery, AI mode
// toggling and filtered staging.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - EnableMode/DisableMode: Moves the AI section between .gitignore and ai.gitignore
//   - Add: Stages files, filtering out AI artifacts while AI mode is enabled
//   - WithoutAIPatterns: Runs an operation with the AI section temporarily lifted
//
// The engine never writes to the console. Diagnostics go to the injected
// zap logger; everything a user needs to see is returned in a result type.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/config"
	"github.com/danieljhkim/git-aiadd/internal/fsops"
	"github.com/danieljhkim/git-aiadd/internal/gitx"
	"github.com/danieljhkim/git-aiadd/internal/workspace"
)

// Engine orchestrates all git-aiadd operations.
// It is the main API surface called by the CLI.
type Engine struct {
	gitRepo  gitx.GitRepo
	fs       fsops.FS
	locator  *workspace.Locator
	logger   *zap.Logger
	settings config.Settings
}

// New creates a new Engine with the given dependencies. A nil logger
// discards diagnostics.
func New(
	gitRepo gitx.GitRepo,
	fs fsops.FS,
	logger *zap.Logger,
	settings config.Settings,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		gitRepo:  gitRepo,
		fs:       fs,
		locator:  workspace.NewLocator(fs, logger, settings.Strategy()),
		logger:   logger.Named("engine"),
		settings: settings,
	}
}

// discoverRepo resolves the repository root containing cwd.
func (e *Engine) discoverRepo(ctx context.Context, cwd string) (string, error) {
	root, err := e.gitRepo.Discover(ctx, cwd)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInRepo, err)
	}
	return root, nil
}

// findWorkspaces discovers the workspaces under cwd.
func (e *Engine) findWorkspaces(cwd string) ([]workspace.Workspace, error) {
	workspaces, err := e.locator.Find(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to discover workspaces: %w", err)
	}
	return workspaces, nil
}

// readOptional reads path, returning exists=false when it is absent.
func (e *Engine) readOptional(path string) (content string, exists bool, err error) {
	exists, err = e.fs.Exists(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return "", false, nil
	}
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return "", true, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}
