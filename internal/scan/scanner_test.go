package scan

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotext/repotext/internal/git"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.md", "README.md", true},
		{"*.md", "docs/guide.md", true},
		{"*.md", "main.go", false},
		{"vendor", "vendor/lib/lib.go", true},
		{"vendor", "internal/vendor.go", false},
		{"internal/*", "internal/app.go", true},
		{"cmd", "cmd/tool/main.go", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.path),
			"matchPattern(%q, %q)", tt.pattern, tt.path)
	}
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary([]byte("plain text\n")))
	assert.False(t, isBinary(nil))
	assert.True(t, isBinary([]byte{'P', 'K', 0x03, 0x04, 0x00}))
}

func initScanRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.email", "dev@example.test")
	run("config", "user.name", "Dev")
	return dir
}

func write(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestFiles(t *testing.T) {
	dir := initScanRepo(t)
	write(t, dir, "main.go", []byte("package main\n"))
	write(t, dir, "docs/guide.md", []byte("# Guide\n"))
	write(t, dir, "logo.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01})
	write(t, dir, "big.txt", []byte(strings.Repeat("x", 256)))
	write(t, dir, ".gitignore", []byte("ignored.txt\n"))
	write(t, dir, "ignored.txt", []byte("should not appear\n"))

	s := New(git.NewRepo(dir), Options{MaxFileSize: 128})
	files, err := s.Files(context.Background())
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, f := range files {
		paths[f.Path] = true
		assert.NotEmpty(t, f.Content)
	}

	assert.True(t, paths["main.go"])
	assert.True(t, paths["docs/guide.md"])
	assert.False(t, paths["logo.png"], "binary skipped")
	assert.False(t, paths["big.txt"], "oversized skipped")
	assert.False(t, paths["ignored.txt"], "gitignored skipped")
}

func TestFilesIncludeExclude(t *testing.T) {
	dir := initScanRepo(t)
	write(t, dir, "main.go", []byte("package main\n"))
	write(t, dir, "main_test.go", []byte("package main\n"))
	write(t, dir, "README.md", []byte("# Readme\n"))

	s := New(git.NewRepo(dir), Options{
		Include: []string{"*.go"},
		Exclude: []string{"*_test.go"},
	})
	files, err := s.Files(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "main.go", files[0].Path)
}

func TestFilesNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not installed")
	}

	s := New(git.NewRepo(t.TempDir()), Options{})
	_, err := s.Files(context.Background())
	assert.Error(t, err)
}
