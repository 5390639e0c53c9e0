// Package github resolves and fetches remote repositories so that
// `repotext pack --remote owner/repo` can snapshot code that is not
// checked out locally.
package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	"github.com/repotext/repotext/internal/git"
)

// Repository is the remote metadata we care about when packing.
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	URL           string
	CloneURL      string
	DefaultBranch string
	Description   string
	Language      string
	Private       bool
	UpdatedAt     time.Time
}

// Client wraps the GitHub API client with rate limiting.
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	runner      *git.Runner
}

// NewClient creates a GitHub client. token may be empty for public
// repositories; rateLimit is requests per second against the API.
func NewClient(token string, rateLimit int) *Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if rateLimit <= 0 {
		rateLimit = 1
	}

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		runner:      git.NewRunner(),
	}
}

// ParseRemote turns a remote reference into owner and name. It accepts
// the "owner/repo" shorthand as well as HTTPS, SSH, and git protocol
// URLs.
func ParseRemote(ref string) (owner, name string, err error) {
	if !strings.Contains(ref, "://") && !strings.Contains(ref, "@") {
		parts := strings.Split(strings.TrimSuffix(ref, ".git"), "/")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
		return "", "", fmt.Errorf("invalid repository reference %q, want owner/repo", ref)
	}
	return git.ParseRepoURL(ref)
}

// FetchRepository gets repository metadata from the API.
func (c *Client) FetchRepository(ctx context.Context, owner, name string) (*Repository, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("fetch repository %s/%s: %w", owner, name, err)
	}

	return &Repository{
		Owner:         owner,
		Name:          name,
		FullName:      repo.GetFullName(),
		URL:           repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		DefaultBranch: repo.GetDefaultBranch(),
		Description:   repo.GetDescription(),
		Language:      repo.GetLanguage(),
		Private:       repo.GetPrivate(),
		UpdatedAt:     repo.GetUpdatedAt().Time,
	}, nil
}

// Clone makes a shallow clone of the repository under baseDir and
// returns the checkout path. depth <= 0 clones the full history.
func (c *Client) Clone(ctx context.Context, repo *Repository, baseDir string, depth int) (string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create clone directory: %w", err)
	}

	dest := filepath.Join(baseDir, repo.Name)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("clone destination %s already exists", dest)
	}

	args := []string{"clone", "--quiet"}
	if depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", depth))
	}
	args = append(args, repo.CloneURL, dest)

	if _, err := c.runner.Run(ctx, baseDir, args...); err != nil {
		return "", err
	}
	return dest, nil
}
