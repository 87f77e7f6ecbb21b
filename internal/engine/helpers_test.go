package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/config"
	"github.com/danieljhkim/git-aiadd/internal/fsops"
	"github.com/danieljhkim/git-aiadd/internal/gitignore"
	"github.com/danieljhkim/git-aiadd/internal/gitx"
)

const (
	start = gitignore.StartMarker
	end   = gitignore.EndMarker
)

// newTestEngine returns an engine over a fresh temporary repository root
// holding a .git directory, backed by a fake git.
func newTestEngine(t *testing.T) (*Engine, *gitx.FakeGitRepo, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	gitRepo := gitx.NewFakeGitRepo(root)
	eng := New(gitRepo, fsops.NewRealFS(), zap.NewNop(), config.Default())
	return eng, gitRepo, root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	require.NoError(t, err)
	return true
}
