package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveToRepoRelative resolves a user-provided path (absolute, relative, or containing "..")
// to a clean, slash-separated repo-root-relative path. The repository root itself resolves
// to ".". Paths that escape the repo boundary are rejected with ErrInvalidPath.
//
// Glob characters are carried through untouched, so "*.go" typed in a subdirectory
// becomes "sub/*.go".
func resolveToRepoRelative(userPath, cwd, repoRoot string) (string, error) {
	var absPath string
	if filepath.IsAbs(userPath) {
		absPath = userPath
	} else {
		absPath = filepath.Join(cwd, userPath)
	}
	absPath = filepath.Clean(absPath)

	repoRoot = filepath.Clean(repoRoot)

	relPath, err := filepath.Rel(repoRoot, absPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to compute repo-relative path for %q: %v", ErrInvalidPath, userPath, err)
	}

	// Reject paths outside the repo
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves to %q which is outside the repository", ErrInvalidPath, userPath, absPath)
	}

	return filepath.ToSlash(relPath), nil
}

// resolveScope resolves every user path against cwd. No paths, or a bare
// "." or "./", means the whole repository whatever cwd is.
func resolveScope(userPaths []string, cwd, repoRoot string) ([]string, error) {
	if len(userPaths) == 0 {
		return []string{"."}, nil
	}
	out := make([]string, 0, len(userPaths))
	for _, p := range userPaths {
		if p == "." || p == "./" {
			return []string{"."}, nil
		}
		rel, err := resolveToRepoRelative(p, cwd, repoRoot)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}
