package gitx

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// FakeGitRepo implements GitRepo with an in-memory index for testing.
type FakeGitRepo struct {
	root string
	err  error

	// Untracked and Modified are returned by ListUntracked and ListModified.
	Untracked []string
	Modified  []string

	// Staged is the simulated index. Add appends to it and Unstage removes from it.
	Staged []string

	// AddErr, when set, is returned by Add.
	AddErr error

	AddCalls     []AddCall
	UnstageCalls [][]string
}

// AddCall records one invocation of Add.
type AddCall struct {
	Dir   string
	Paths []string
}

// NewFakeGitRepo creates a new FakeGitRepo rooted at root.
func NewFakeGitRepo(root string) *FakeGitRepo {
	return &FakeGitRepo{root: root}
}

// SetError sets an error to be returned by Discover.
func (g *FakeGitRepo) SetError(err error) {
	g.err = err
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(ctx context.Context, cwd string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.root, nil
}

// relPath returns absPath relative to the fake root.
func (g *FakeGitRepo) relPath(absPath string) (string, error) {
	rel, err := filepath.Rel(g.root, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path is outside repository")
	}
	return rel, nil
}

// Add records the call and appends repo-relative paths to Staged.
func (g *FakeGitRepo) Add(ctx context.Context, dir string, paths []string) error {
	g.AddCalls = append(g.AddCalls, AddCall{Dir: dir, Paths: append([]string(nil), paths...)})
	if g.AddErr != nil {
		return g.AddErr
	}
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(dir, p)
		}
		rel, err := g.relPath(abs)
		if err != nil {
			rel = p
		}
		g.Staged = append(g.Staged, filepath.ToSlash(rel))
	}
	return nil
}

// ListUntracked returns Untracked.
func (g *FakeGitRepo) ListUntracked(ctx context.Context, root string) ([]string, error) {
	return g.Untracked, nil
}

// ListModified returns Modified.
func (g *FakeGitRepo) ListModified(ctx context.Context, root string) ([]string, error) {
	return g.Modified, nil
}

// StagedFiles returns Staged.
func (g *FakeGitRepo) StagedFiles(ctx context.Context, root string) ([]string, error) {
	return g.Staged, nil
}

// Unstage records the call and removes paths from Staged.
func (g *FakeGitRepo) Unstage(ctx context.Context, root string, paths []string) error {
	g.UnstageCalls = append(g.UnstageCalls, append([]string(nil), paths...))
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		drop[p] = true
	}
	kept := g.Staged[:0]
	for _, p := range g.Staged {
		if !drop[p] {
			kept = append(kept, p)
		}
	}
	g.Staged = kept
	return nil
}

// AddedPaths returns every path passed to Add, in call order.
func (g *FakeGitRepo) AddedPaths() []string {
	var out []string
	for _, call := range g.AddCalls {
		out = append(out, call.Paths...)
	}
	return out
}
