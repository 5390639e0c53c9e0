package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ToolError is the single failure kind surfaced by this package. It is
// returned whenever the git binary exits non-zero and carries the full
// argument list plus captured stderr, which together form a complete
// diagnostic for the caller to display verbatim.
type ToolError struct {
	Args   []string
	Stderr string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), strings.TrimSpace(e.Stderr))
}

// Runner executes the git binary rooted at a working directory.
// It holds no state; every invocation owns its own process and buffers.
type Runner struct{}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes `git -C <dir> <args...>` and returns trimmed stdout.
//
// Stdout and stderr are collected into separate buffers. os/exec copies
// each pipe on its own goroutine before Wait returns, so a process that
// fills one pipe while we read the other cannot deadlock, no matter how
// far the output exceeds the kernel pipe buffer. Canceling ctx kills the
// process.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	full := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if strings.TrimSpace(msg) == "" {
			// Process never produced stderr (binary missing, ctx canceled).
			msg = err.Error()
		}
		return "", &ToolError{Args: full, Stderr: msg}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunLines is Run with the result split on newlines, empty lines dropped.
func (r *Runner) RunLines(ctx context.Context, dir string, args ...string) ([]string, error) {
	out, err := r.Run(ctx, dir, args...)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// ResolveDir maps a path to the directory git should run in. A directory
// passes through unchanged, a file resolves to its parent, and a missing
// path also passes through so the eventual git invocation reports the
// error instead of us.
func ResolveDir(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	if info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
