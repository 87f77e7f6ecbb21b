// Package workspace discovers the directories git-aiadd manages.
//
// A workspace is a directory with its own .gitignore / ai.gitignore pair,
// typically one holding a .git marker. Workspaces are discovered fresh on
// every invocation; nothing is persisted.
//
// Two strategies are supported:
//   - Shallow: the root (if it has a .git marker) plus immediate
//     subdirectories with a .git marker.
//   - Manifest: Shallow, plus directories declared by the "workspaces" field
//     of package.json, searched recursively.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/fsops"
	"github.com/danieljhkim/git-aiadd/internal/gitignore"
)

// GitMarker is the entry that marks a version-control root.
const GitMarker = ".git"

// ErrDirRead indicates the discovery root could not be read.
var ErrDirRead = errors.New("failed to read directory")

// Strategy selects how workspaces are discovered.
type Strategy string

const (
	// Shallow scans the root and its immediate subdirectories.
	Shallow Strategy = "shallow"

	// Manifest additionally follows package.json workspace declarations.
	Manifest Strategy = "manifest"
)

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Shallow, Manifest:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown discovery strategy %q (want %q or %q)", s, Shallow, Manifest)
	}
}

// Source records why a directory was reported as a workspace.
type Source string

const (
	SourceRoot     Source = "root"
	SourceSubdir   Source = "subdir"
	SourceManifest Source = "manifest"
)

// Workspace is a directory managed by git-aiadd.
type Workspace struct {
	// Dir is the absolute workspace directory.
	Dir string

	// HasGitMarker is true when Dir contains a .git file or directory.
	HasGitMarker bool

	// Source records how the workspace was found.
	Source Source
}

// GitignorePath returns the path of the workspace .gitignore.
func (w Workspace) GitignorePath() string {
	return filepath.Join(w.Dir, gitignore.FileName)
}

// AIGitignorePath returns the path of the workspace ai.gitignore.
func (w Workspace) AIGitignorePath() string {
	return filepath.Join(w.Dir, gitignore.AIFileName)
}

// Locator discovers workspaces beneath a root directory.
type Locator struct {
	fs       fsops.FS
	logger   *zap.Logger
	strategy Strategy
}

// NewLocator creates a Locator. A nil logger discards diagnostics.
func NewLocator(fs fsops.FS, logger *zap.Logger, strategy Strategy) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strategy == "" {
		strategy = Shallow
	}
	return &Locator{
		fs:       fs,
		logger:   logger.Named("workspace"),
		strategy: strategy,
	}
}

// Find returns the workspaces under root as distinct absolute paths, root
// first. A missing or unreadable root is an error wrapping ErrDirRead;
// unreadable subdirectories are logged and skipped.
func (l *Locator) Find(root string) ([]Workspace, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	isDir, err := l.fs.IsDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDirRead, absRoot, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w %s: not a directory", ErrDirRead, absRoot)
	}

	s := &scan{locator: l, seen: make(map[string]bool)}
	switch l.strategy {
	case Manifest:
		s.manifest(absRoot, SourceRoot)
	default:
		s.shallow(absRoot)
	}

	l.logger.Debug("workspaces discovered",
		zap.String("root", absRoot),
		zap.String("strategy", string(l.strategy)),
		zap.Int("count", len(s.found)),
	)
	return s.found, nil
}

// scan accumulates results for a single Find call.
type scan struct {
	locator *Locator
	seen    map[string]bool
	found   []Workspace
}

func (s *scan) add(dir string, marker bool, source Source) {
	if s.seen[dir] {
		return
	}
	s.seen[dir] = true
	s.found = append(s.found, Workspace{Dir: dir, HasGitMarker: marker, Source: source})
	s.locator.logger.Debug("found workspace", zap.String("dir", dir), zap.String("source", string(source)))
}

func (s *scan) hasMarker(dir string) bool {
	exists, err := s.locator.fs.Exists(filepath.Join(dir, GitMarker))
	if err != nil {
		s.locator.logger.Warn("failed to check git marker", zap.String("dir", dir), zap.Error(err))
		return false
	}
	return exists
}

func (s *scan) shallow(root string) {
	if s.hasMarker(root) {
		s.add(root, true, SourceRoot)
	}
	s.subdirs(root)
}

// subdirs adds every immediate subdirectory of dir holding a git marker.
func (s *scan) subdirs(dir string) {
	entries, err := s.locator.fs.ReadDir(dir)
	if err != nil {
		s.locator.logger.Warn("failed to read directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if skipDir(name) {
			continue
		}
		full := filepath.Join(dir, name)
		isDir, err := s.locator.fs.IsDir(full)
		if err != nil {
			s.locator.logger.Warn("failed to stat entry", zap.String("path", full), zap.Error(err))
			continue
		}
		if isDir && s.hasMarker(full) {
			s.add(full, true, SourceSubdir)
		}
	}
}

func skipDir(name string) bool {
	return name == GitMarker || name == "node_modules"
}

// manifest handles one directory under the Manifest strategy. The root is
// only a workspace when it carries a git marker; declared directories always
// are.
func (s *scan) manifest(dir string, source Source) {
	marker := s.hasMarker(dir)
	if source == SourceRoot && !marker {
		s.subdirs(dir)
		return
	}
	if s.seen[dir] {
		return
	}
	s.add(dir, marker, source)

	globs, err := readManifestGlobs(s.locator.fs, dir)
	if err != nil {
		s.locator.logger.Warn("ignoring package manifest", zap.String("dir", dir), zap.Error(err))
	}

	for _, glob := range globs {
		matches, err := globDirs(s.locator.fs, dir, glob)
		if err != nil {
			s.locator.logger.Warn("bad workspace glob", zap.String("dir", dir), zap.String("glob", glob), zap.Error(err))
			continue
		}
		for _, match := range matches {
			if match == dir {
				continue
			}
			s.manifest(match, SourceManifest)
		}
	}

	s.subdirs(dir)
}

// Dirs returns the directories of workspaces.
func Dirs(workspaces []Workspace) []string {
	dirs := make([]string, len(workspaces))
	for i, ws := range workspaces {
		dirs[i] = ws.Dir
	}
	return dirs
}
