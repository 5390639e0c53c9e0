package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initTestRepo builds a scratch repository with the git binary itself.
// Tests that need a real repo skip when git is unavailable.
func initTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	dir := t.TempDir()
	gitRun(t, dir, "init", "-q")
	gitRun(t, dir, "config", "user.email", "dev@example.test")
	gitRun(t, dir, "config", "user.name", "Dev")
	gitRun(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not installed")
	}
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// commitFile writes, stages, and commits one file. Extra message
// arguments become additional -m paragraphs (the second forms the body).
func commitFile(t *testing.T, dir, name, content string, messages ...string) {
	t.Helper()
	writeFile(t, dir, name, content)
	gitRun(t, dir, "add", name)

	args := []string{"commit", "-q"}
	for _, m := range messages {
		args = append(args, "-m", m)
	}
	gitRun(t, dir, args...)
}
