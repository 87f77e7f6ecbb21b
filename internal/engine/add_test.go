package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/config"
	"github.com/danieljhkim/git-aiadd/internal/fsops"
	"github.com/danieljhkim/git-aiadd/internal/gitx"
	"github.com/danieljhkim/git-aiadd/internal/planner"
)

func TestAdd_NotInRepo(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	gitRepo.SetError(gitx.ErrNotRepository)

	_, err := eng.Add(context.Background(), &AddRequest{CWD: root})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInRepo))
	assert.Empty(t, gitRepo.AddCalls)
}

func TestAdd_NormalMode(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, ".gitignore"), "node_modules\n")

	result, err := eng.Add(context.Background(), &AddRequest{CWD: root})
	require.NoError(t, err)

	assert.Equal(t, ModeNormal, result.Mode)
	assert.Equal(t, []string{"."}, result.Staged)
	assert.Equal(t, []string{filepath.Join(root, ".gitignore")}, result.Gitignores)
	require.Len(t, gitRepo.AddCalls, 2)
	assert.Equal(t, gitx.AddCall{Dir: root, Paths: []string{".gitignore"}}, gitRepo.AddCalls[0])
	assert.Equal(t, gitx.AddCall{Dir: root, Paths: []string{"."}}, gitRepo.AddCalls[1])
}

func TestAdd_NormalModePassesPathsThrough(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	sub := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(sub, 0755))

	result, err := eng.Add(context.Background(), &AddRequest{CWD: sub, Paths: []string{"a.go", "*.pt"}})
	require.NoError(t, err)
	assert.Equal(t, ModeNormal, result.Mode)
	require.Len(t, gitRepo.AddCalls, 1)
	assert.Equal(t, gitx.AddCall{Dir: sub, Paths: []string{"a.go", "*.pt"}}, gitRepo.AddCalls[0])
}

func TestAdd_AIModeFiltersPatterns(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, ".gitignore"), "ai.gitignore\n")
	writeFile(t, filepath.Join(root, "ai.gitignore"), "*.pt\n")
	gitRepo.Untracked = []string{"a.pt", "b.txt", "ai.gitignore"}

	result, err := eng.Add(context.Background(), &AddRequest{CWD: root, Paths: []string{"."}})
	require.NoError(t, err)

	assert.Equal(t, ModeAI, result.Mode)
	assert.Equal(t, []string{"b.txt"}, result.Staged)
	assert.Equal(t, []planner.Skip{
		{Path: "a.pt", Pattern: "*.pt"},
		{Path: "ai.gitignore", Pattern: "ai.gitignore"},
	}, result.Skipped)
	assert.Equal(t, 1, result.Batches)

	require.Len(t, gitRepo.AddCalls, 2)
	assert.Equal(t, []string{".gitignore"}, gitRepo.AddCalls[0].Paths, ".gitignore is staged first")
	assert.Equal(t, gitx.AddCall{Dir: root, Paths: []string{"b.txt"}}, gitRepo.AddCalls[1])
	assert.NotContains(t, gitRepo.Staged, "a.pt")
}

func TestAdd_AIModeUnionsWorkspacePatterns(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "ai.gitignore"), "# root\n*.pt\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ml", ".git"), 0755))
	writeFile(t, filepath.Join(root, "ml", "ai.gitignore"), "*.ckpt\n*.pt\n")
	gitRepo.Untracked = []string{"keep.go", "x.pt", "ml/run/m.ckpt"}
	gitRepo.Modified = []string{"keep.go", "README.md"}

	result, err := eng.Add(context.Background(), &AddRequest{CWD: root})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "keep.go"}, result.Staged)
	assert.ElementsMatch(t, []string{"x.pt", "ml/run/m.ckpt"}, skippedPaths(result.Skipped))
	assert.Equal(t, []string{root, filepath.Join(root, "ml")}, result.Workspaces)
	assert.Empty(t, result.Gitignores)
}

func TestAdd_AIModeScope(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "ai.gitignore"), "*.pt\n")
	writeFile(t, filepath.Join(root, "src", "ai.gitignore"), "")
	gitRepo.Untracked = []string{"src/a.go", "src/w.pt", "docs/b.md", "main.go"}

	tests := []struct {
		name  string
		cwd   string
		paths []string
		want  []string
	}{
		{name: "directory", cwd: root, paths: []string{"src"}, want: []string{"src/a.go"}},
		{name: "relative to cwd", cwd: filepath.Join(root, "src"), paths: []string{"a.go"}, want: []string{"src/a.go"}},
		{name: "glob", cwd: root, paths: []string{"*.md"}, want: []string{"docs/b.md"}},
		{name: "multiple", cwd: root, paths: []string{"main.go", "docs"}, want: []string{"docs/b.md", "main.go"}},
		{name: "dot from subdirectory", cwd: filepath.Join(root, "src"), paths: []string{"."}, want: []string{"docs/b.md", "main.go", "src/a.go", "src/w.pt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eng.Add(context.Background(), &AddRequest{CWD: tt.cwd, Paths: tt.paths})
			require.NoError(t, err)
			assert.Equal(t, ModeAI, result.Mode)
			assert.Equal(t, tt.want, result.Staged)
		})
	}
}

func TestAdd_AIModeInvalidPath(t *testing.T) {
	eng, _, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "ai.gitignore"), "*.pt\n")

	_, err := eng.Add(context.Background(), &AddRequest{CWD: root, Paths: []string{"../elsewhere"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

func TestAdd_Batches(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	writeFile(t, filepath.Join(root, "ai.gitignore"), "")

	gitRepo := gitx.NewFakeGitRepo(root)
	gitRepo.Untracked = []string{"a", "b", "c", "d", "e"}
	settings := config.Default()
	settings.BatchSize = 2
	eng := New(gitRepo, fsops.NewRealFS(), zap.NewNop(), settings)

	result, err := eng.Add(context.Background(), &AddRequest{CWD: root})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Batches)
	require.Len(t, gitRepo.AddCalls, 3)
	assert.Equal(t, []string{"a", "b"}, gitRepo.AddCalls[0].Paths)
	assert.Equal(t, []string{"c", "d"}, gitRepo.AddCalls[1].Paths)
	assert.Equal(t, []string{"e"}, gitRepo.AddCalls[2].Paths)
	for _, call := range gitRepo.AddCalls {
		assert.Equal(t, root, call.Dir)
	}
}

func TestAdd_GitFailurePropagates(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "ai.gitignore"), "*.pt\n")
	gitRepo.Untracked = []string{"b.txt"}
	gitErr := &gitx.CommandError{Args: []string{"add", "--", "b.txt"}, Stderr: "fatal: boom", Err: errors.New("exit status 128")}
	gitRepo.AddErr = gitErr

	_, err := eng.Add(context.Background(), &AddRequest{CWD: root})
	require.Error(t, err)
	var cmdErr *gitx.CommandError
	assert.True(t, errors.As(err, &cmdErr))
}

func TestAdd_AIModeNothingLeftToStage(t *testing.T) {
	eng, gitRepo, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "ai.gitignore"), "*.pt\n")
	gitRepo.Untracked = []string{"a.pt", "models/b.pt"}

	result, err := eng.Add(context.Background(), &AddRequest{CWD: root})
	require.NoError(t, err)

	assert.Equal(t, ModeAI, result.Mode)
	assert.Empty(t, result.Staged)
	assert.Equal(t, 0, result.Batches)
	assert.Equal(t, []string{"a.pt", "models/b.pt"}, skippedPaths(result.Skipped))
	assert.Empty(t, gitRepo.AddCalls)
}

func skippedPaths(skips []planner.Skip) []string {
	out := make([]string, len(skips))
	for i, s := range skips {
		out[i] = s.Path
	}
	return out
}
