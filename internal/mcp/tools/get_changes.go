package tools

import (
	"context"
	"fmt"

	"github.com/repotext/repotext/internal/git"
)

// GetChangesTool implements the repotext.get_changes tool: it reports
// uncommitted working-tree changes for a local repository.
type GetChangesTool struct{}

// NewGetChangesTool creates a new GetChangesTool.
func NewGetChangesTool() *GetChangesTool {
	return &GetChangesTool{}
}

// Execute executes the get_changes tool.
func (t *GetChangesTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	path, ok := stringArg(args, "path")
	if !ok {
		return nil, fmt.Errorf("path is required")
	}

	repo := git.NewRepo(path)
	changes, err := repo.UncommittedChanges(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"path":    repo.Path(),
		"changes": changes,
		"clean":   len(changes) == 0,
	}, nil
}

// GetSchema returns the JSON schema for the tool.
func (t *GetChangesTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"description": "List uncommitted changes in a repository working tree",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the repository (a file path resolves to its directory)",
				},
			},
			"required": []string{"path"},
		},
	}
}
