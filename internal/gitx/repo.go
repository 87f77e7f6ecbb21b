package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepository is returned by Discover when cwd is outside a work tree.
var ErrNotRepository = errors.New("not in a git repository")

// GitRepo provides an abstraction for the git operations git-aiadd needs.
type GitRepo interface {
	// Discover returns the top-level directory of the work tree containing cwd.
	Discover(ctx context.Context, cwd string) (root string, err error)

	// Add stages paths, interpreted relative to dir.
	Add(ctx context.Context, dir string, paths []string) error

	// ListUntracked lists untracked, non-ignored files relative to root.
	ListUntracked(ctx context.Context, root string) ([]string, error)

	// ListModified lists tracked files with unstaged modifications relative to root.
	ListModified(ctx context.Context, root string) ([]string, error)

	// StagedFiles lists files staged in the index relative to root.
	StagedFiles(ctx context.Context, root string) ([]string, error)

	// Unstage removes paths from the index without touching the work tree.
	Unstage(ctx context.Context, root string, paths []string) error
}

// CommandError describes a failed git invocation.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct {
	// Binary is the git executable, "git" when empty.
	Binary string
}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{Binary: "git"}
}

// run executes git in dir and returns its stdout.
func (g *RealGitRepo) run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

// Discover asks git for the top-level directory of the work tree.
func (g *RealGitRepo) Discover(ctx context.Context, cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	out, err := g.run(ctx, absPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}

	root := strings.TrimSpace(out)
	if root == "" {
		return "", ErrNotRepository
	}
	return filepath.FromSlash(root), nil
}

// Add stages paths relative to dir.
func (g *RealGitRepo) Add(ctx context.Context, dir string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := g.run(ctx, dir, args...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// ListUntracked lists untracked files that are not ignored.
func (g *RealGitRepo) ListUntracked(ctx context.Context, root string) ([]string, error) {
	out, err := g.run(ctx, root, "ls-files", "-z", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}
	return splitNul(out), nil
}

// ListModified lists tracked files with unstaged changes.
func (g *RealGitRepo) ListModified(ctx context.Context, root string) ([]string, error) {
	out, err := g.run(ctx, root, "ls-files", "-z", "--modified")
	if err != nil {
		return nil, fmt.Errorf("failed to list modified files: %w", err)
	}
	return splitNul(out), nil
}

// StagedFiles lists files staged in the index.
func (g *RealGitRepo) StagedFiles(ctx context.Context, root string) ([]string, error) {
	out, err := g.run(ctx, root, "diff", "-z", "--name-only", "--cached")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}
	return splitNul(out), nil
}

// Unstage removes paths from the index. Repositories without a first commit
// have no HEAD to reset to, so the paths are dropped from the index instead.
func (g *RealGitRepo) Unstage(ctx context.Context, root string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	var args []string
	if _, err := g.run(ctx, root, "rev-parse", "--verify", "--quiet", "HEAD"); err == nil {
		args = append([]string{"reset", "--quiet", "HEAD", "--"}, paths...)
	} else {
		args = append([]string{"rm", "--cached", "--quiet", "--"}, paths...)
	}

	if _, err := g.run(ctx, root, args...); err != nil {
		return fmt.Errorf("failed to unstage files: %w", err)
	}
	return nil
}

// splitNul splits NUL-terminated git output into paths.
func splitNul(out string) []string {
	parts := strings.Split(out, "\x00")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
