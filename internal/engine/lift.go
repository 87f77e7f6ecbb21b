package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/gitignore"
	"github.com/danieljhkim/git-aiadd/internal/pattern"
)

// BackupSuffix is appended to .gitignore while its AI section is lifted.
const BackupSuffix = ".bak"

// Lift runs git add on req.Paths (or ".") in req.CWD with the AI section of
// the repository .gitignore temporarily lifted, then unstages whatever
// matches the lifted patterns.
func (e *Engine) Lift(ctx context.Context, req *LiftRequest) (*LiftResult, error) {
	repoRoot, err := e.discoverRepo(ctx, req.CWD)
	if err != nil {
		return nil, err
	}

	paths := req.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	result := &LiftResult{RepoRoot: repoRoot, Unstaged: []string{}}
	lifted, unstaged, err := e.withoutAIPatterns(ctx, repoRoot, func() error {
		return e.gitRepo.Add(ctx, req.CWD, paths)
	})
	result.Lifted = lifted
	if len(unstaged) > 0 {
		result.Unstaged = unstaged
	}
	return result, err
}

// WithoutAIPatterns runs op while the AI section of repoDir/.gitignore is
// removed from the file.
//
// The original .gitignore is copied to .gitignore.bak first. After op
// returns, any staged file that matches one of the lifted patterns is
// unstaged. The original file is restored and the backup removed on every
// exit path, including a failing or panicking op; all errors are joined.
// If op staged .gitignore, the restored version is staged in its place.
// Without a .gitignore, or without an AI section in it, op simply runs.
func (e *Engine) WithoutAIPatterns(ctx context.Context, repoDir string, op func() error) error {
	_, _, err := e.withoutAIPatterns(ctx, repoDir, op)
	return err
}

func (e *Engine) withoutAIPatterns(ctx context.Context, repoDir string, op func() error) (lifted bool, unstaged []string, err error) {
	gitignorePath := filepath.Join(repoDir, gitignore.FileName)
	backupPath := gitignorePath + BackupSuffix
	log := e.logger.With(zap.String("repo", repoDir))

	content, exists, err := e.readOptional(gitignorePath)
	if err != nil {
		return false, nil, err
	}
	state := gitignore.Parse(content)
	if !exists || len(state.AIPatterns) == 0 {
		log.Debug("no AI section to lift")
		return false, nil, op()
	}

	if err := e.fs.Copy(gitignorePath, backupPath); err != nil {
		return false, nil, fmt.Errorf("failed to back up %s: %w", gitignorePath, err)
	}

	// restage is set when op staged the lifted .gitignore, so the index gets
	// the restored content instead.
	restage := false
	defer func() {
		if restoreErr := e.restoreBackup(backupPath, gitignorePath); restoreErr != nil {
			err = errors.Join(err, restoreErr)
			return
		}
		log.Debug("restored .gitignore")
		if restage {
			if addErr := e.gitRepo.Add(ctx, repoDir, []string{gitignore.FileName}); addErr != nil {
				err = errors.Join(err, addErr)
			}
		}
	}()

	stripped := gitignore.Serialize(gitignore.State{RegularContent: state.RegularContent}, false)
	if err := e.fs.AtomicWrite(gitignorePath, []byte(stripped), ignoreFilePerm); err != nil {
		return false, nil, fmt.Errorf("failed to write %s: %w", gitignorePath, err)
	}
	log.Debug("lifted AI section", zap.Int("patterns", len(state.AIPatterns)))

	opErr := op()

	staged, stagedErr := e.gitRepo.StagedFiles(ctx, repoDir)
	if stagedErr != nil {
		return true, nil, errors.Join(opErr, stagedErr)
	}
	backupName := gitignore.FileName + BackupSuffix
	candidates := make([]string, 0, len(staged))
	backupStaged := false
	for _, p := range staged {
		switch p {
		case gitignore.FileName:
			restage = true
		case backupName:
			backupStaged = true
			continue
		}
		candidates = append(candidates, p)
	}

	// The backup lives in the work tree while op runs; it must not outlive
	// the restore in the index.
	var backupErr error
	if backupStaged {
		if backupErr = e.gitRepo.Unstage(ctx, repoDir, []string{backupName}); backupErr == nil {
			log.Debug("unstaged .gitignore backup")
		}
	}

	unstaged, unstageErr := e.unstageMatching(ctx, repoDir, candidates, state.AIPatterns)
	return true, unstaged, errors.Join(opErr, backupErr, unstageErr)
}

// unstageMatching unstages every file in staged matched by patterns.
func (e *Engine) unstageMatching(ctx context.Context, repoDir string, staged, patterns []string) ([]string, error) {
	_, matched := pattern.NewSet(patterns, pattern.PathAware).Filter(staged)
	if len(matched) == 0 {
		return nil, nil
	}
	if err := e.gitRepo.Unstage(ctx, repoDir, matched); err != nil {
		return nil, err
	}
	e.logger.Info("unstaged AI files", zap.Strings("paths", matched))
	return matched, nil
}

// restoreBackup puts the backed-up .gitignore back and deletes the backup.
func (e *Engine) restoreBackup(backupPath, gitignorePath string) error {
	data, err := e.fs.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup %s: %w", backupPath, err)
	}
	if err := e.fs.AtomicWrite(gitignorePath, data, ignoreFilePerm); err != nil {
		return fmt.Errorf("failed to restore %s from %s: %w", gitignorePath, backupPath, err)
	}
	if err := e.fs.Remove(backupPath); err != nil {
		return fmt.Errorf("failed to remove backup %s: %w", backupPath, err)
	}
	return nil
}
