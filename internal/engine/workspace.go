package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/git-aiadd/internal/gitignore"
	"github.com/danieljhkim/git-aiadd/internal/workspace"
)

// On enables AI mode in every workspace discovered from req.CWD.
func (e *Engine) On(ctx context.Context, req *ModeRequest) (*ModeResult, error) {
	return e.toggle(ctx, req.CWD, e.EnableMode)
}

// Off disables AI mode in every workspace discovered from req.CWD where it is
// enabled.
func (e *Engine) Off(ctx context.Context, req *ModeRequest) (*ModeResult, error) {
	return e.toggle(ctx, req.CWD, e.DisableMode)
}

func (e *Engine) toggle(ctx context.Context, cwd string, apply func(string) (ModeAction, int, error)) (*ModeResult, error) {
	workspaces, err := e.findWorkspaces(cwd)
	if err != nil {
		return nil, err
	}

	result := &ModeResult{Workspaces: []WorkspaceChange{}}
	for _, ws := range workspaces {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		action, patterns, err := apply(ws.Dir)
		if err != nil {
			return result, fmt.Errorf("workspace %s: %w", ws.Dir, err)
		}
		result.Workspaces = append(result.Workspaces, WorkspaceChange{
			Dir:      ws.Dir,
			Action:   action,
			Patterns: patterns,
		})
	}
	return result, nil
}

// Status reports whether AI mode is enabled for req.CWD and, with req.All,
// for every discovered workspace.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	result := &StatusResult{
		Dir:     req.CWD,
		Enabled: e.IsModeEnabled(req.CWD),
	}
	if !req.All {
		return result, nil
	}

	workspaces, err := e.findWorkspaces(req.CWD)
	if err != nil {
		return nil, err
	}

	result.Workspaces = make([]WorkspaceStatus, 0, len(workspaces))
	for _, ws := range workspaces {
		status, err := e.workspaceStatus(ws)
		if err != nil {
			return nil, err
		}
		result.Workspaces = append(result.Workspaces, status)
	}
	return result, nil
}

func (e *Engine) workspaceStatus(ws workspace.Workspace) (WorkspaceStatus, error) {
	status := WorkspaceStatus{
		Dir:    ws.Dir,
		Source: string(ws.Source),
	}

	aiContent, aiExists, err := e.readOptional(ws.AIGitignorePath())
	if err != nil {
		return status, err
	}
	content, exists, err := e.readOptional(ws.GitignorePath())
	if err != nil {
		return status, err
	}

	status.Enabled = aiExists
	status.HasGitignore = exists
	status.HasSection = gitignore.HasSection(content)
	if aiExists {
		status.Patterns = len(gitignore.PatternLines(aiContent))
	} else {
		status.Patterns = len(gitignore.Parse(content).AIPatterns)
	}
	return status, nil
}

// Init seeds default ignore files in every workspace discovered from
// req.CWD. When none is found, req.CWD itself is initialized.
func (e *Engine) Init(ctx context.Context, req *InitRequest) (*InitResult, error) {
	workspaces, err := e.findWorkspaces(req.CWD)
	if err != nil {
		return nil, err
	}
	dirs := workspace.Dirs(workspaces)
	if len(dirs) == 0 {
		dirs = []string{req.CWD}
	}

	result := &InitResult{Workspaces: []InitChange{}}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		change, err := e.InitWorkspace(dir)
		if err != nil {
			return result, fmt.Errorf("workspace %s: %w", dir, err)
		}
		result.Workspaces = append(result.Workspaces, change)
	}
	return result, nil
}
