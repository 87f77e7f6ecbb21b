package gitx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// setupGitRepo creates a temporary git repository for testing.
func setupGitRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}

	runGit(t, resolved, "init", "--quiet")
	runGit(t, resolved, "config", "user.email", "test@example.com")
	runGit(t, resolved, "config", "user.name", "Test User")

	return resolved
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
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

func TestRealGitRepo_Discover(t *testing.T) {
	repo := NewRealGitRepo()
	ctx := context.Background()

	t.Run("finds git repo from root", func(t *testing.T) {
		gitDir := setupGitRepo(t)

		root, err := repo.Discover(ctx, gitDir)
		if err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
		if root != gitDir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, gitDir)
		}
	})

	t.Run("finds git repo from subdirectory", func(t *testing.T) {
		gitDir := setupGitRepo(t)

		subDir := filepath.Join(gitDir, "a", "b", "c")
		if err := os.MkdirAll(subDir, 0755); err != nil {
			t.Fatalf("failed to create subdirectories: %v", err)
		}

		root, err := repo.Discover(ctx, subDir)
		if err != nil {
			t.Fatalf("Discover from subdirectory failed: %v", err)
		}
		if root != gitDir {
			t.Errorf("Discover returned wrong root: got %s, want %s", root, gitDir)
		}
	})

	t.Run("returns error when not in git repo", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not available")
		}
		tmpDir := t.TempDir()
		// Keep git from walking up into an enclosing repository.
		t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(tmpDir))

		_, err := repo.Discover(ctx, tmpDir)
		if err == nil {
			t.Fatal("Expected error when not in git repo, got nil")
		}
		if !errors.Is(err, ErrNotRepository) {
			t.Errorf("Expected ErrNotRepository, got: %v", err)
		}
	})
}

func TestRealGitRepo_ListAndStage(t *testing.T) {
	repo := NewRealGitRepo()
	ctx := context.Background()
	gitDir := setupGitRepo(t)

	writeFile(t, filepath.Join(gitDir, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(gitDir, "tracked.txt"), "v1\n")
	runGit(t, gitDir, "add", ".gitignore", "tracked.txt")
	runGit(t, gitDir, "commit", "--quiet", "-m", "initial")

	writeFile(t, filepath.Join(gitDir, "tracked.txt"), "v2\n")
	writeFile(t, filepath.Join(gitDir, "new file.txt"), "x\n")
	writeFile(t, filepath.Join(gitDir, "dir", "model.pt"), "x\n")
	writeFile(t, filepath.Join(gitDir, "debug.log"), "x\n")

	untracked, err := repo.ListUntracked(ctx, gitDir)
	if err != nil {
		t.Fatalf("ListUntracked failed: %v", err)
	}
	sort.Strings(untracked)
	if strings.Join(untracked, ",") != "dir/model.pt,new file.txt" {
		t.Errorf("ListUntracked = %v", untracked)
	}

	modified, err := repo.ListModified(ctx, gitDir)
	if err != nil {
		t.Fatalf("ListModified failed: %v", err)
	}
	if len(modified) != 1 || modified[0] != "tracked.txt" {
		t.Errorf("ListModified = %v, want [tracked.txt]", modified)
	}

	if err := repo.Add(ctx, gitDir, []string{"new file.txt", "dir/model.pt"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	staged, err := repo.StagedFiles(ctx, gitDir)
	if err != nil {
		t.Fatalf("StagedFiles failed: %v", err)
	}
	sort.Strings(staged)
	if strings.Join(staged, ",") != "dir/model.pt,new file.txt" {
		t.Errorf("StagedFiles = %v", staged)
	}

	if err := repo.Unstage(ctx, gitDir, []string{"dir/model.pt"}); err != nil {
		t.Fatalf("Unstage failed: %v", err)
	}

	staged, err = repo.StagedFiles(ctx, gitDir)
	if err != nil {
		t.Fatalf("StagedFiles failed: %v", err)
	}
	if len(staged) != 1 || staged[0] != "new file.txt" {
		t.Errorf("StagedFiles after Unstage = %v, want [new file.txt]", staged)
	}
}

func TestRealGitRepo_UnstageWithoutHead(t *testing.T) {
	repo := NewRealGitRepo()
	ctx := context.Background()
	gitDir := setupGitRepo(t)

	writeFile(t, filepath.Join(gitDir, "a.pt"), "x\n")
	writeFile(t, filepath.Join(gitDir, "b.txt"), "x\n")
	if err := repo.Add(ctx, gitDir, []string{"a.pt", "b.txt"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := repo.Unstage(ctx, gitDir, []string{"a.pt"}); err != nil {
		t.Fatalf("Unstage failed: %v", err)
	}

	staged, err := repo.StagedFiles(ctx, gitDir)
	if err != nil {
		t.Fatalf("StagedFiles failed: %v", err)
	}
	if len(staged) != 1 || staged[0] != "b.txt" {
		t.Errorf("StagedFiles = %v, want [b.txt]", staged)
	}
	if _, err := os.Stat(filepath.Join(gitDir, "a.pt")); err != nil {
		t.Errorf("Unstage must not delete the work tree file: %v", err)
	}
}

func TestRealGitRepo_AddFailure(t *testing.T) {
	repo := NewRealGitRepo()
	gitDir := setupGitRepo(t)

	err := repo.Add(context.Background(), gitDir, []string{"does-not-exist.txt"})
	if err == nil {
		t.Fatal("expected error staging a missing path")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T", err)
	}
	if cmdErr.Args[0] != "add" {
		t.Errorf("CommandError.Args = %v", cmdErr.Args)
	}
	if cmdErr.Stderr == "" {
		t.Error("CommandError.Stderr should carry git's message")
	}
}

func TestFakeGitRepo_AddAndUnstage(t *testing.T) {
	fake := NewFakeGitRepo("/repo")
	ctx := context.Background()

	if err := fake.Add(ctx, "/repo/apps", []string{"a.pt", "b.txt"}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(fake.Staged, ",") != "apps/a.pt,apps/b.txt" {
		t.Errorf("Staged = %v", fake.Staged)
	}

	if err := fake.Unstage(ctx, "/repo", []string{"apps/a.pt"}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(fake.Staged, ",") != "apps/b.txt" {
		t.Errorf("Staged after Unstage = %v", fake.Staged)
	}

	fake.SetError(ErrNotRepository)
	if _, err := fake.Discover(ctx, "/repo"); !errors.Is(err, ErrNotRepository) {
		t.Errorf("Discover error = %v, want ErrNotRepository", err)
	}
}
