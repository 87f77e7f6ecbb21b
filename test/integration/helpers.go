package integration

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/danieljhkim/git-aiadd/internal/config"
	"github.com/danieljhkim/git-aiadd/internal/engine"
	"github.com/danieljhkim/git-aiadd/internal/fsops"
	"github.com/danieljhkim/git-aiadd/internal/gitignore"
	"github.com/danieljhkim/git-aiadd/internal/gitx"
)

const (
	start = gitignore.StartMarker
	end   = gitignore.EndMarker
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool

	// failWrites makes AtomicWrite to a path return the mapped error.
	failWrites map[string]error
}

func newTestFS() *testFS {
	return &testFS{
		files:      make(map[string][]byte),
		dirs:       make(map[string]bool),
		failWrites: make(map[string]error),
	}
}

func (m *testFS) mkdirAll(path string) {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		m.dirs[p] = true
		if parent := filepath.Dir(p); parent == p {
			return
		}
	}
}

func (m *testFS) writeFile(path, content string) {
	m.mkdirAll(filepath.Dir(path))
	m.files[path] = []byte(content)
}

func (m *testFS) content(path string) (string, bool) {
	data, ok := m.files[path]
	return string(data), ok
}

func (m *testFS) Exists(path string) (bool, error) {
	_, hasFile := m.files[path]
	return hasFile || m.dirs[path], nil
}

func (m *testFS) IsDir(path string) (bool, error) {
	return m.dirs[path], nil
}

func (m *testFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *testFS) ReadDir(path string) ([]os.DirEntry, error) {
	if !m.dirs[path] {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}

	var entries []os.DirEntry
	for p := range m.dirs {
		if p != path && filepath.Dir(p) == path {
			entries = append(entries, dirEntry(p, true, 0))
		}
	}
	for p, data := range m.files {
		if filepath.Dir(p) == path {
			entries = append(entries, dirEntry(p, false, int64(len(data))))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func dirEntry(path string, isDir bool, size int64) os.DirEntry {
	return fs.FileInfoToDirEntry(&mockFileInfo{name: filepath.Base(path), isDir: isDir, size: size})
}

func (m *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := m.failWrites[path]; err != nil {
		return err
	}
	if !m.dirs[filepath.Dir(path)] {
		return &os.PathError{Op: "write", Path: path, Err: os.ErrNotExist}
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *testFS) Copy(src, dst string) error {
	data, err := m.ReadFile(src)
	if err != nil {
		return err
	}
	return m.AtomicWrite(dst, data, 0644)
}

func (m *testFS) Remove(path string) error {
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		delete(m.dirs, path)
		return nil
	}
	return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
}

// mockFileInfo is a simple FileInfo implementation for testing
type mockFileInfo struct {
	name  string
	isDir bool
	size  int64
}

func (m *mockFileInfo) Name() string { return m.name }
func (m *mockFileInfo) Size() int64  { return m.size }
func (m *mockFileInfo) Mode() os.FileMode {
	if m.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

var _ fsops.FS = (*testFS)(nil)

// setupTestEngine creates an engine over an in-memory repository rooted at
// /repo with a fake git.
func setupTestEngine(t *testing.T) (*engine.Engine, *testFS, *gitx.FakeGitRepo, string) {
	t.Helper()
	return setupTestEngineWith(t, config.Default())
}

// setupTestEngineWith is setupTestEngine with explicit settings.
func setupTestEngineWith(t *testing.T, settings config.Settings) (*engine.Engine, *testFS, *gitx.FakeGitRepo, string) {
	t.Helper()

	root := filepath.FromSlash("/repo")
	memFS := newTestFS()
	memFS.mkdirAll(filepath.Join(root, ".git"))

	gitRepo := gitx.NewFakeGitRepo(root)
	eng := engine.New(gitRepo, memFS, zap.NewNop(), settings)
	return eng, memFS, gitRepo, root
}

// setupGitRepo creates a temporary git repository and an engine driving the
// real git binary against it. The test is skipped when git is unavailable.
func setupGitRepo(t *testing.T) (*engine.Engine, string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	runGit(t, root, "init", "--quiet")
	runGit(t, root, "config", "user.email", "test@example.com")
	runGit(t, root, "config", "user.name", "Test User")
	runGit(t, root, "config", "core.autocrlf", "false")

	eng := engine.New(gitx.NewRealGitRepo(), fsops.NewRealFS(), zap.NewNop(), config.Default())
	return eng, root
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

// indexFiles returns the paths recorded in the git index, sorted.
func indexFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	for _, line := range strings.Split(runGit(t, dir, "ls-files"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	sort.Strings(files)
	return files
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mustContent(t *testing.T, memFS *testFS, path string) string {
	t.Helper()
	content, ok := memFS.content(path)
	if !ok {
		t.Fatalf("expected %s to exist", path)
	}
	return content
}

func errWriteDenied(path string) error {
	return fmt.Errorf("write %s: permission denied", path)
}
