// Package scan selects the files that go into a repository snapshot.
// File discovery is delegated to git itself (tracked plus untracked
// non-ignored paths), so ignore-rule evaluation never has to be
// reimplemented here.
package scan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/repotext/repotext/internal/git"
)

// DefaultMaxFileSize caps how much of a single file ends up in a
// snapshot. Anything larger is noise for a language model.
const DefaultMaxFileSize = 1 << 20 // 1MB

// binarySniffLen is how many leading bytes are inspected for NUL when
// deciding whether a file is binary.
const binarySniffLen = 8192

// File is one selected file with its content loaded.
type File struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Content string `json:"-"`
}

// Options controls file selection.
type Options struct {
	// MaxFileSize in bytes; 0 means DefaultMaxFileSize.
	MaxFileSize int64
	// Include, when non-empty, keeps only paths matching at least one
	// pattern. Patterns match the full repo-relative path or its base
	// name, filepath.Match syntax.
	Include []string
	// Exclude drops paths matching any pattern, after Include.
	Exclude []string
}

// Scanner lists and loads snapshot candidate files for one repository.
type Scanner struct {
	repo *git.Repo
	opts Options
}

// New creates a Scanner for the repository.
func New(repo *git.Repo, opts Options) *Scanner {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &Scanner{repo: repo, opts: opts}
}

// Files returns the selected files in the order git lists them.
// Oversized, binary, and unreadable paths are skipped silently: a file
// that cannot go into the snapshot should not abort the snapshot.
func (s *Scanner) Files(ctx context.Context) ([]File, error) {
	paths, err := s.repo.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	files := []File{}
	for _, p := range paths {
		if !s.selected(p) {
			continue
		}

		abs := filepath.Join(s.repo.Path(), p)
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() || info.Size() > s.opts.MaxFileSize {
			continue
		}

		data, err := os.ReadFile(abs)
		if err != nil || isBinary(data) {
			continue
		}

		files = append(files, File{Path: p, Size: info.Size(), Content: string(data)})
	}
	return files, nil
}

func (s *Scanner) selected(path string) bool {
	if len(s.opts.Include) > 0 {
		matched := false
		for _, pattern := range s.opts.Include {
			if matchPattern(pattern, path) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range s.opts.Exclude {
		if matchPattern(pattern, path) {
			return false
		}
	}
	return true
}

// matchPattern matches against the full repo-relative path, the base
// name, and any leading directory, so "vendor" excludes everything under
// vendor/ and "*.md" works regardless of depth.
func matchPattern(pattern, path string) bool {
	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
		return true
	}
	for dir := filepath.Dir(path); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		if ok, _ := filepath.Match(pattern, dir); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(dir)); ok {
			return true
		}
	}
	return false
}

// isBinary reports whether data looks binary: a NUL byte within the
// first 8KB, same heuristic git uses for diff output.
func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
