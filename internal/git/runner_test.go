package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolErrorMessage(t *testing.T) {
	err := &ToolError{
		Args:   []string{"-C", "/repo", "log"},
		Stderr: "fatal: not a git repository\n",
	}

	assert.Contains(t, err.Error(), "-C /repo log")
	assert.Contains(t, err.Error(), "fatal: not a git repository")
}

func TestResolveDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Equal(t, dir, ResolveDir(dir), "directory passes through")
	assert.Equal(t, dir, ResolveDir(file), "file resolves to parent")

	missing := filepath.Join(dir, "no", "such", "path")
	assert.Equal(t, missing, ResolveDir(missing), "missing path passes through")
}

func TestRunReturnsTrimmedStdout(t *testing.T) {
	dir := initTestRepo(t)

	out, err := NewRunner().Run(context.Background(), dir, "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true", out)
}

func TestRunNonZeroExitBecomesToolError(t *testing.T) {
	requireGit(t)

	_, err := NewRunner().Run(context.Background(), t.TempDir(), "rev-parse", "--is-inside-work-tree")
	require.Error(t, err)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr), "want *ToolError, got %T", err)
	assert.NotEmpty(t, toolErr.Stderr)
	assert.Contains(t, toolErr.Args, "rev-parse")
}

func TestRunMissingDirectoryBecomesToolError(t *testing.T) {
	requireGit(t)

	_, err := NewRunner().Run(context.Background(), "/no/such/directory", "status")
	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
}

func TestRunCanceledContextBecomesToolError(t *testing.T) {
	requireGit(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, t.TempDir(), "status")
	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.NotEmpty(t, toolErr.Stderr)
}

// A diff larger than the kernel pipe buffer (commonly 64KB) must not
// wedge the runner. Both streams are drained concurrently with the
// awaited exit, so this returns promptly regardless of output size.
func TestRunLargeOutputDoesNotDeadlock(t *testing.T) {
	dir := initTestRepo(t)

	line := strings.Repeat("x", 40) + "\n"
	commitFile(t, dir, "big.txt", strings.Repeat(line, 4000), "add big file")

	out, err := NewRunner().Run(context.Background(), dir, "show", "HEAD")
	require.NoError(t, err)
	assert.Greater(t, len(out), 64*1024)
}

func TestRunLinesDropsEmptyLines(t *testing.T) {
	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a", "first")
	commitFile(t, dir, "b.txt", "b", "second")

	// %n%n injects blank lines between subjects.
	lines, err := NewRunner().RunLines(context.Background(), dir, "log", "--pretty=format:%s%n%n")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, lines)
}
