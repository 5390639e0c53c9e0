package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Repo reads version-control metadata from one repository by driving the
// git binary. It is a value-like handle: the only state is the resolved
// root path, so a Repo is safe to share and cheap to recreate.
type Repo struct {
	runner *Runner
	path   string

	// Workers bounds how many per-commit follow-up queries run
	// concurrently during history collection. Values <= 1 keep the
	// baseline sequential behavior.
	Workers int
}

// NewRepo creates a Repo rooted at path. A file path resolves to its
// containing directory; a missing path is kept as-is and surfaces as a
// ToolError on first use.
func NewRepo(path string) *Repo {
	return &Repo{
		runner: NewRunner(),
		path:   ResolveDir(path),
	}
}

// Path returns the resolved repository root the Repo operates on.
func (r *Repo) Path() string {
	return r.path
}

// Detect verifies the path is inside a git working tree.
func (r *Repo) Detect(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, r.path, "rev-parse", "--is-inside-work-tree"); err != nil {
		return err
	}
	return nil
}

// Branch returns the current branch name, or "HEAD" when detached.
func (r *Repo) Branch(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, r.path, "rev-parse", "--abbrev-ref", "HEAD")
}

// HeadSHA returns the full hash of the current commit.
func (r *Repo) HeadSHA(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, r.path, "rev-parse", "HEAD")
}

// RemoteURL returns the URL of the origin remote.
func (r *Repo) RemoteURL(ctx context.Context) (string, error) {
	return r.runner.Run(ctx, r.path, "config", "--get", "remote.origin.url")
}

// ListFiles returns tracked files plus untracked files not covered by
// ignore rules, in the order git emits them.
func (r *Repo) ListFiles(ctx context.Context) ([]string, error) {
	return r.runner.RunLines(ctx, r.path, "ls-files", "--cached", "--others", "--exclude-standard")
}

var (
	httpsRemoteRegex = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/]+)`)
	sshRemoteRegex   = regexp.MustCompile(`git@[^:]+:([^/]+)/([^/]+)`)
	gitRemoteRegex   = regexp.MustCompile(`git://[^/]+/([^/]+)/([^/]+)`)
)

// ParseRepoURL extracts owner and repo name from a git remote URL.
// Supports HTTPS, SSH, and git protocol forms.
func ParseRepoURL(remoteURL string) (owner, repo string, err error) {
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	for _, re := range []*regexp.Regexp{httpsRemoteRegex, sshRemoteRegex, gitRemoteRegex} {
		if matches := re.FindStringSubmatch(remoteURL); len(matches) == 3 {
			return matches[1], matches[2], nil
		}
	}

	return "", "", fmt.Errorf("unrecognized git URL format: %s", remoteURL)
}
