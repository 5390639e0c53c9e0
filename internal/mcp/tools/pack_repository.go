package tools

import (
	"context"
	"fmt"

	"github.com/repotext/repotext/internal/config"
	"github.com/repotext/repotext/internal/git"
	"github.com/repotext/repotext/internal/pack"
)

// PackRepositoryTool implements the repotext.pack_repository tool: it
// assembles a full snapshot document for a local repository.
type PackRepositoryTool struct {
	cfg *config.Config
}

// NewPackRepositoryTool creates a new PackRepositoryTool. cfg supplies
// the pack defaults; nil falls back to built-in defaults.
func NewPackRepositoryTool(cfg *config.Config) *PackRepositoryTool {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PackRepositoryTool{cfg: cfg}
}

// Execute executes the pack_repository tool.
func (t *PackRepositoryTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	path, ok := stringArg(args, "path")
	if !ok {
		return nil, fmt.Errorf("path is required")
	}

	opts := pack.Options{
		CommitCount:  intArg(args, "commit_count", t.cfg.Pack.CommitCount),
		IncludeStats: boolArg(args, "include_stats", t.cfg.Pack.IncludeStats),
		MaxFileSize:  t.cfg.Pack.MaxFileSize,
		Exclude:      t.cfg.Pack.Exclude,
		Format:       t.cfg.Pack.Format,
	}
	if format, ok := stringArg(args, "format"); ok {
		opts.Format = format
	}

	repo := git.NewRepo(path)
	repo.Workers = t.cfg.Pack.Workers
	if err := repo.Detect(ctx); err != nil {
		return nil, err
	}

	result, err := pack.NewBuilder(repo, opts, nil).Build(ctx)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetSchema returns the JSON schema for the tool.
func (t *PackRepositoryTool) GetSchema() map[string]interface{} {
	return map[string]interface{}{
		"description": "Assemble a repository snapshot document (tree, history, working tree, file contents)",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the repository",
				},
				"commit_count": map[string]interface{}{
					"type":        "integer",
					"description": "How many recent commits to include (0 omits history)",
				},
				"include_stats": map[string]interface{}{
					"type":        "boolean",
					"description": "Include change statistics per commit",
				},
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Document format: markdown or plain",
				},
			},
			"required": []string{"path"},
		},
	}
}
