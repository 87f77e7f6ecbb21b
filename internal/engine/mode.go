package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/gitignore"
)

// ignoreFilePerm is the mode used for .gitignore and ai.gitignore.
const ignoreFilePerm = 0644

// ModeAction describes what a mode change did to a workspace.
type ModeAction string

const (
	// ActionEnabled means the workspace was switched into AI mode.
	ActionEnabled ModeAction = "enabled"

	// ActionAlreadyEnabled means ai.gitignore already existed.
	ActionAlreadyEnabled ModeAction = "already-enabled"

	// ActionNoGitignore means the workspace has no .gitignore to work with.
	ActionNoGitignore ModeAction = "no-gitignore"

	// ActionDisabled means the AI section was merged back into .gitignore.
	ActionDisabled ModeAction = "disabled"

	// ActionNotEnabled means the workspace was not in AI mode.
	ActionNotEnabled ModeAction = "not-enabled"
)

// EnableMode switches dir into AI mode.
//
// If .gitignore carries an AI section, its patterns move to ai.gitignore and
// the section is replaced by a single "ai.gitignore" line at the top of the
// file, unless the file already references ai.gitignore. Without a section, an empty ai.gitignore is created unless one
// already exists. A directory without .gitignore is left untouched.
func (e *Engine) EnableMode(dir string) (ModeAction, int, error) {
	gitignorePath := filepath.Join(dir, gitignore.FileName)
	aiPath := filepath.Join(dir, gitignore.AIFileName)
	log := e.logger.With(zap.String("dir", dir))

	content, exists, err := e.readOptional(gitignorePath)
	if err != nil {
		return "", 0, err
	}
	if !exists {
		log.Debug("no .gitignore, skipping")
		return ActionNoGitignore, 0, nil
	}

	state := gitignore.Parse(content)
	if gitignore.HasSection(content) {
		patterns := make([]string, 0, len(state.AIPatterns))
		for _, p := range state.AIPatterns {
			patterns = append(patterns, strings.TrimSpace(p))
		}
		if err := e.writeLines(aiPath, patterns); err != nil {
			return "", 0, err
		}

		regular := gitignore.WithReference(gitignore.TrimTrailingBlank(state.RegularContent))
		if err := e.writeLines(gitignorePath, regular); err != nil {
			return "", 0, err
		}
		log.Info("moved AI section to ai.gitignore", zap.Int("patterns", len(patterns)))
		return ActionEnabled, len(patterns), nil
	}

	aiExists, err := e.fs.Exists(aiPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to check %s: %w", aiPath, err)
	}
	if aiExists {
		log.Debug("ai.gitignore already present")
		return ActionAlreadyEnabled, 0, nil
	}

	if err := e.fs.AtomicWrite(aiPath, nil, ignoreFilePerm); err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", aiPath, err)
	}
	if err := e.writeLines(gitignorePath, gitignore.WithReference(state.RegularContent)); err != nil {
		return "", 0, err
	}
	log.Info("created empty ai.gitignore")
	return ActionEnabled, 0, nil
}

// DisableMode switches dir out of AI mode.
//
// The lines of ai.gitignore are appended to .gitignore as a fresh AI
// section, replacing any section already there, and ai.gitignore is removed
// together with a stale .ai_mode marker. With nothing to merge, only the
// reference line EnableMode put at the top is dropped. A directory without
// ai.gitignore is left untouched.
func (e *Engine) DisableMode(dir string) (ModeAction, int, error) {
	gitignorePath := filepath.Join(dir, gitignore.FileName)
	aiPath := filepath.Join(dir, gitignore.AIFileName)
	log := e.logger.With(zap.String("dir", dir))

	aiContent, aiExists, err := e.readOptional(aiPath)
	if err != nil {
		return "", 0, err
	}
	if !aiExists {
		log.Debug("ai.gitignore absent, nothing to disable")
		return ActionNotEnabled, 0, nil
	}

	content, exists, err := e.readOptional(gitignorePath)
	if err != nil {
		return "", 0, err
	}

	state := gitignore.Parse(content)
	merged := gitignore.State{AIPatterns: sectionLines(aiContent)}
	if len(merged.AIPatterns) > 0 {
		// The section carries its own reference line.
		merged.RegularContent = gitignore.WithoutReference(state.RegularContent)
	} else {
		merged.RegularContent = gitignore.WithoutLeadingReference(state.RegularContent)
	}

	out := gitignore.Serialize(merged, true)
	if exists || out != "" {
		if err := e.fs.AtomicWrite(gitignorePath, []byte(out), ignoreFilePerm); err != nil {
			return "", 0, fmt.Errorf("failed to write %s: %w", gitignorePath, err)
		}
	}

	if err := e.fs.Remove(aiPath); err != nil {
		return "", 0, fmt.Errorf("failed to remove %s: %w", aiPath, err)
	}
	if err := e.removeLegacyMarker(dir); err != nil {
		return "", 0, err
	}

	patterns := 0
	for _, line := range merged.AIPatterns {
		if gitignore.IsPatternLine(line) {
			patterns++
		}
	}
	log.Info("merged ai.gitignore into .gitignore", zap.Int("patterns", patterns))
	return ActionDisabled, patterns, nil
}

// IsModeEnabled reports whether dir is in AI mode, i.e. ai.gitignore exists.
func (e *Engine) IsModeEnabled(dir string) bool {
	exists, err := e.fs.Exists(filepath.Join(dir, gitignore.AIFileName))
	if err != nil {
		e.logger.Warn("failed to check ai.gitignore", zap.String("dir", dir), zap.Error(err))
		return false
	}
	return exists
}

// InitWorkspace seeds dir with default ignore files. An existing .gitignore
// only gains the reference line; an existing ai.gitignore is kept as is.
func (e *Engine) InitWorkspace(dir string) (InitChange, error) {
	change := InitChange{Dir: dir}
	gitignorePath := filepath.Join(dir, gitignore.FileName)
	aiPath := filepath.Join(dir, gitignore.AIFileName)

	content, exists, err := e.readOptional(gitignorePath)
	if err != nil {
		return change, err
	}
	if !exists {
		if err := e.fs.AtomicWrite(gitignorePath, []byte(gitignore.DefaultGitignore), ignoreFilePerm); err != nil {
			return change, fmt.Errorf("failed to create %s: %w", gitignorePath, err)
		}
		change.CreatedGitignore = true
	} else if !hasReference(content) {
		lines := gitignore.WithReference(gitignore.Lines(content))
		if err := e.writeLines(gitignorePath, lines); err != nil {
			return change, err
		}
		change.AddedReference = true
	}

	aiExists, err := e.fs.Exists(aiPath)
	if err != nil {
		return change, fmt.Errorf("failed to check %s: %w", aiPath, err)
	}
	if !aiExists {
		if err := e.fs.AtomicWrite(aiPath, []byte(gitignore.DefaultAIGitignore), ignoreFilePerm); err != nil {
			return change, fmt.Errorf("failed to create %s: %w", aiPath, err)
		}
		change.CreatedAIGitignore = true
	}

	e.logger.Debug("initialized workspace",
		zap.String("dir", dir),
		zap.Bool("created_gitignore", change.CreatedGitignore),
		zap.Bool("created_ai_gitignore", change.CreatedAIGitignore),
	)
	return change, nil
}

// removeLegacyMarker deletes the .ai_mode file older releases wrote.
func (e *Engine) removeLegacyMarker(dir string) error {
	marker := filepath.Join(dir, gitignore.LegacyModeMarker)
	exists, err := e.fs.Exists(marker)
	if err != nil || !exists {
		return err
	}
	if err := e.fs.Remove(marker); err != nil {
		return fmt.Errorf("failed to remove %s: %w", marker, err)
	}
	e.logger.Debug("removed legacy mode marker", zap.String("path", marker))
	return nil
}

// writeLines writes lines to path as newline-terminated text.
func (e *Engine) writeLines(path string, lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := e.fs.AtomicWrite(path, []byte(content), ignoreFilePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sectionLines returns the verbatim lines of an ai.gitignore for merging
// into a section. Trailing blank lines and self-references are dropped.
func sectionLines(content string) []string {
	return gitignore.TrimTrailingBlank(gitignore.WithoutReference(gitignore.Lines(content)))
}

func hasReference(content string) bool {
	for _, line := range gitignore.Lines(content) {
		if strings.TrimSpace(line) == gitignore.ReferenceLine {
			return true
		}
	}
	return false
}
