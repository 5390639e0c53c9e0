package tools

import (
	"context"
	"fmt"

	"github.com/repotext/repotext/internal/git"
)

// GetCommitsTool implements the repotext.get_commits tool: recent commit
// history with per-commit file lists and optional change statistics.
type GetCommitsTool struct {
	// Workers bounds concurrent per-commit metadata queries.
	Workers int
}

// NewGetCommitsTool creates a new GetCommitsTool.
func NewGetCommitsTool(workers int) *GetCommitsTool {
	return &GetCommitsTool{Workers: workers}
}

// Execute executes the get_commits tool.
func (t *GetCommitsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	path, ok := stringArg(args, "path")
	if !ok {
		return nil, fmt.Errorf("path is required")
	}

	count := intArg(args, "count", 10)
	if count < 0 {
		count = 0
	}
	includeStats := boolArg(args, "include_stats", true)

	repo := git.NewRepo(path)
	repo.Workers = t.Workers
	commits, err := repo.Commits(ctx, count, includeStats)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"path":    repo.Path(),
		"commits": commits,
	}, nil
}

// GetSchema returns the JSON schema for the tool.
func (t *GetCommitsTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"description": "Get recent commit history with changed files and statistics",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the repository",
				},
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "How many commits to return (default 10)",
				},
				"include_stats": map[string]interface{}{
					"type":        "boolean",
					"description": "Include per-commit change statistics (default true)",
				},
			},
			"required": []string{"path"},
		},
	}
}
