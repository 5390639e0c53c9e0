// Package pack assembles a repository snapshot document: directory tree,
// version-control metadata, and selected file contents, formatted for
// pasting into a language model context window.
package pack

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/repotext/repotext/internal/git"
	"github.com/repotext/repotext/internal/scan"
	"github.com/repotext/repotext/internal/tokens"
)

// Format selects the snapshot document layout.
const (
	FormatMarkdown = "markdown"
	FormatPlain    = "plain"
)

// Options controls snapshot assembly.
type Options struct {
	// CommitCount is how many recent commits to include; 0 omits the
	// history section.
	CommitCount  int
	IncludeStats bool
	MaxFileSize  int64
	Include      []string
	Exclude      []string
	Format       string
}

// Result is one assembled snapshot.
type Result struct {
	ID          string    `json:"id"`
	Repo        string    `json:"repo"`
	Branch      string    `json:"branch"`
	Head        string    `json:"head"`
	GeneratedAt time.Time `json:"generated_at"`
	FileCount   int       `json:"file_count"`
	CommitCount int       `json:"commit_count"`
	TokenCount  int       `json:"token_count"`
	Document    string    `json:"document"`
}

// Builder assembles snapshots for one repository.
type Builder struct {
	repo *git.Repo
	opts Options
	log  *logrus.Logger
}

// NewBuilder creates a Builder. A nil logger discards log output.
func NewBuilder(repo *git.Repo, opts Options, log *logrus.Logger) *Builder {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}
	return &Builder{repo: repo, opts: opts, log: log}
}

// Build assembles the snapshot. File selection failures abort the build
// (the target is not a usable repository); history and working-tree
// queries degrade section-by-section so a repo with no commits yet still
// packs.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	files, err := scan.New(b.repo, scan.Options{
		MaxFileSize: b.opts.MaxFileSize,
		Include:     b.opts.Include,
		Exclude:     b.opts.Exclude,
	}).Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan repository: %w", err)
	}

	result := &Result{
		ID:          uuid.New().String(),
		Repo:        b.repo.Path(),
		GeneratedAt: time.Now().UTC(),
		FileCount:   len(files),
	}

	if branch, err := b.repo.Branch(ctx); err == nil {
		result.Branch = branch
	}
	if head, err := b.repo.HeadSHA(ctx); err == nil {
		result.Head = head
	}

	var commits []git.Commit
	if b.opts.CommitCount > 0 {
		commits, err = b.repo.Commits(ctx, b.opts.CommitCount, b.opts.IncludeStats)
		if err != nil {
			b.log.WithError(err).Warn("commit history unavailable, omitting section")
			commits = nil
		}
	}
	result.CommitCount = len(commits)

	changes, err := b.repo.UncommittedChanges(ctx)
	if err != nil {
		b.log.WithError(err).Warn("working tree state unavailable, omitting section")
		changes = nil
	}

	switch b.opts.Format {
	case FormatPlain:
		result.Document = b.renderPlain(result, files, commits, changes)
	default:
		result.Document = b.renderMarkdown(result, files, commits, changes)
	}
	result.TokenCount = tokens.Estimate(result.Document)

	b.log.WithFields(logrus.Fields{
		"snapshot": result.ID,
		"files":    result.FileCount,
		"commits":  result.CommitCount,
		"tokens":   result.TokenCount,
	}).Info("snapshot assembled")

	return result, nil
}

func (b *Builder) renderMarkdown(r *Result, files []scan.File, commits []git.Commit, changes []git.FileChange) string {
	var sb strings.Builder
	name := filepath.Base(r.Repo)

	fmt.Fprintf(&sb, "# Repository snapshot: %s\n\n", name)
	fmt.Fprintf(&sb, "- Snapshot ID: %s\n", r.ID)
	fmt.Fprintf(&sb, "- Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	if r.Branch != "" {
		fmt.Fprintf(&sb, "- Branch: %s\n", r.Branch)
	}
	if r.Head != "" {
		fmt.Fprintf(&sb, "- Head: %s\n", r.Head)
	}
	fmt.Fprintf(&sb, "- Files: %d\n\n", len(files))

	sb.WriteString("## Directory tree\n\n```\n")
	sb.WriteString(renderTree(name, filePaths(files)))
	sb.WriteString("```\n\n")

	if len(commits) > 0 {
		sb.WriteString("## Recent commits\n\n")
		for _, c := range commits {
			fmt.Fprintf(&sb, "- `%s` %s — %s (%s)\n", c.ShortHash, c.Date, c.Subject, c.Author)
			if c.Stats != "" {
				fmt.Fprintf(&sb, "  - %s\n", c.Stats)
			}
			for _, fc := range c.Files {
				fmt.Fprintf(&sb, "  - %s %s\n", fc.Status, fc.Path)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Working tree\n\n")
	if len(changes) == 0 {
		sb.WriteString("Clean.\n\n")
	} else {
		for _, fc := range changes {
			fmt.Fprintf(&sb, "- %s %s\n", fc.Status, fc.Path)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Files\n\n")
	for _, f := range files {
		fence := fenceFor(f.Content)
		fmt.Fprintf(&sb, "### %s\n\n%s%s\n%s", f.Path, fence, langFor(f.Path), f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(fence + "\n\n")
	}

	return sb.String()
}

func (b *Builder) renderPlain(r *Result, files []scan.File, commits []git.Commit, changes []git.FileChange) string {
	var sb strings.Builder
	name := filepath.Base(r.Repo)

	fmt.Fprintf(&sb, "REPOSITORY SNAPSHOT: %s\n", name)
	fmt.Fprintf(&sb, "ID: %s\nGENERATED: %s\n", r.ID, r.GeneratedAt.Format(time.RFC3339))
	if r.Branch != "" {
		fmt.Fprintf(&sb, "BRANCH: %s\n", r.Branch)
	}
	fmt.Fprintf(&sb, "\n==== DIRECTORY TREE ====\n%s\n", renderTree(name, filePaths(files)))

	if len(commits) > 0 {
		sb.WriteString("==== RECENT COMMITS ====\n")
		for _, c := range commits {
			fmt.Fprintf(&sb, "%s %s %s <%s> %s\n", c.ShortHash, c.Date, c.Author, c.Email, c.Subject)
			if c.Stats != "" {
				fmt.Fprintf(&sb, "    %s\n", c.Stats)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("==== WORKING TREE ====\n")
	if len(changes) == 0 {
		sb.WriteString("clean\n")
	} else {
		for _, fc := range changes {
			fmt.Fprintf(&sb, "%s\t%s\n", fc.Status, fc.Path)
		}
	}
	sb.WriteString("\n")

	for _, f := range files {
		fmt.Fprintf(&sb, "==== FILE: %s ====\n%s", f.Path, f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func filePaths(files []scan.File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// fenceFor returns a backtick fence one longer than the longest backtick
// run in content, so embedded code fences cannot break the document.
func fenceFor(content string) string {
	longest := 0
	run := 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		longest = 2
	}
	return strings.Repeat("`", longest+1)
}

var fenceLangs = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "tsx",
	".rb":   "ruby",
	".rs":   "rust",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cs":   "csharp",
	".sh":   "bash",
	".yml":  "yaml",
	".yaml": "yaml",
	".json": "json",
	".toml": "toml",
	".md":   "markdown",
	".sql":  "sql",
	".html": "html",
	".css":  "css",
}

func langFor(path string) string {
	return fenceLangs[strings.ToLower(filepath.Ext(path))]
}
