package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/gitignore"
	"github.com/danieljhkim/git-aiadd/internal/pattern"
	"github.com/danieljhkim/git-aiadd/internal/planner"
	"github.com/danieljhkim/git-aiadd/internal/workspace"
)

// Add stages files the way git add would, except that while AI mode is
// enabled for req.CWD, files matched by any workspace's ai.gitignore are
// left out.
//
// The workflow is:
//  1. Resolve the repository root
//  2. Stage every workspace .gitignore
//  3. Without AI mode, run git add on req.Paths (or ".") in req.CWD
//  4. With AI mode, plan the untracked and modified files against the AI
//     patterns and stage the survivors in batches from the repository root
func (e *Engine) Add(ctx context.Context, req *AddRequest) (*AddResult, error) {
	repoRoot, err := e.discoverRepo(ctx, req.CWD)
	if err != nil {
		return nil, err
	}

	workspaces, err := e.findWorkspaces(req.CWD)
	if err != nil {
		return nil, err
	}

	result := &AddResult{
		Mode:       ModeNormal,
		RepoRoot:   repoRoot,
		Workspaces: workspace.Dirs(workspaces),
		Gitignores: []string{},
		Staged:     []string{},
		Skipped:    []planner.Skip{},
	}

	for _, ws := range workspaces {
		staged, err := e.stageGitignore(ctx, ws)
		if err != nil {
			return result, err
		}
		if staged {
			result.Gitignores = append(result.Gitignores, ws.GitignorePath())
		}
	}

	if !e.IsModeEnabled(req.CWD) {
		paths := req.Paths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		if err := e.gitRepo.Add(ctx, req.CWD, paths); err != nil {
			return result, err
		}
		result.Staged = paths
		result.Batches = 1
		e.logger.Debug("staged without filtering", zap.Strings("paths", paths))
		return result, nil
	}

	result.Mode = ModeAI

	scopePaths, err := resolveScope(req.Paths, req.CWD, repoRoot)
	if err != nil {
		return result, err
	}

	candidates, err := e.candidates(ctx, repoRoot)
	if err != nil {
		return result, err
	}

	patterns, err := e.collectAIPatterns(workspaces)
	if err != nil {
		return result, err
	}
	set := pattern.NewSet(patterns, pattern.BaseFallback)
	set.SkipReferenceFile = true

	plan := planner.BuildStagePlan(candidates, planner.NewScope(scopePaths), set, e.settings.BatchSize)
	if len(plan.Skipped) > 0 {
		e.logger.Debug("skipping AI files", zap.Strings("paths", plan.SkippedPaths()))
	}
	result.Skipped = plan.Skipped

	if plan.IsEmpty() {
		e.logger.Info("nothing to stage after filtering",
			zap.Int("candidates", len(candidates)),
			zap.Int("skipped", len(result.Skipped)),
		)
		return result, nil
	}

	for i, batch := range plan.Batches {
		if err := e.gitRepo.Add(ctx, repoRoot, batch); err != nil {
			return result, fmt.Errorf("failed to stage batch %d of %d: %w", i+1, len(plan.Batches), err)
		}
		result.Staged = append(result.Staged, batch...)
		result.Batches++
	}

	e.logger.Info("filtered add complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("patterns", set.Len()),
		zap.Int("staged", len(result.Staged)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("batches", result.Batches),
	)
	return result, nil
}

// stageGitignore stages the .gitignore of ws if it exists.
func (e *Engine) stageGitignore(ctx context.Context, ws workspace.Workspace) (bool, error) {
	exists, err := e.fs.Exists(ws.GitignorePath())
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", ws.GitignorePath(), err)
	}
	if !exists {
		return false, nil
	}
	if err := e.gitRepo.Add(ctx, ws.Dir, []string{gitignore.FileName}); err != nil {
		return false, err
	}
	return true, nil
}

// candidates returns the union of untracked and modified files.
func (e *Engine) candidates(ctx context.Context, repoRoot string) ([]string, error) {
	untracked, err := e.gitRepo.ListUntracked(ctx, repoRoot)
	if err != nil {
		return nil, err
	}
	modified, err := e.gitRepo.ListModified(ctx, repoRoot)
	if err != nil {
		return nil, err
	}
	all := make([]string, 0, len(untracked)+len(modified))
	all = append(all, untracked...)
	all = append(all, modified...)
	return all, nil
}

// collectAIPatterns returns the union of the ai.gitignore patterns of every
// workspace, in first-seen order.
func (e *Engine) collectAIPatterns(workspaces []workspace.Workspace) ([]string, error) {
	seen := make(map[string]bool)
	var patterns []string
	for _, ws := range workspaces {
		content, exists, err := e.readOptional(ws.AIGitignorePath())
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		for _, p := range gitignore.PatternLines(content) {
			if !seen[p] {
				seen[p] = true
				patterns = append(patterns, p)
			}
		}
	}
	return patterns, nil
}
