package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repotext/repotext/internal/git"
	"github.com/repotext/repotext/internal/github"
	"github.com/repotext/repotext/internal/pack"
	"github.com/repotext/repotext/internal/store"
)

var packCmd = &cobra.Command{
	Use:   "pack [path]",
	Short: "Pack a repository into a single snapshot document",
	Long: `Pack assembles a snapshot of a repository: directory tree, recent
commits, uncommitted changes, and file contents.

Examples:
  # Pack the current directory to stdout
  repotext pack

  # Pack another checkout into a file
  repotext pack ~/src/myproject -o snapshot.md

  # Pack a remote GitHub repository (shallow clone)
  repotext pack --remote golang/example -o snapshot.md

  # Plain text format with 5 commits and no stats
  repotext pack --format plain -n 5 --stats=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().String("remote", "", "GitHub repository to pack (owner/repo or URL)")
	packCmd.Flags().StringP("output", "o", "", "Write the document to a file instead of stdout")
	packCmd.Flags().String("format", "", "Document format: markdown or plain")
	packCmd.Flags().IntP("commits", "n", -1, "How many recent commits to include (0 omits history)")
	packCmd.Flags().Bool("stats", true, "Include change statistics per commit")
	packCmd.Flags().StringSlice("include", nil, "Only include files matching these patterns")
	packCmd.Flags().StringSlice("exclude", nil, "Exclude files matching these patterns (adds to config)")
	packCmd.Flags().Int64("max-file-size", 0, "Skip files larger than this many bytes")
	packCmd.Flags().Int("workers", 0, "Concurrent per-commit metadata queries")
}

func runPack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	remote, _ := cmd.Flags().GetString("remote")
	output, _ := cmd.Flags().GetString("output")

	opts := packOptions(cmd)

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	if remote != "" {
		cloned, cleanup, err := cloneRemote(cmd, remote)
		if err != nil {
			return err
		}
		defer cleanup()
		path = cloned
	}

	repo := git.NewRepo(path)
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		repo.Workers = workers
	} else {
		repo.Workers = cfg.Pack.Workers
	}

	if err := repo.Detect(ctx); err != nil {
		return fmt.Errorf("not a git repository: %s", repo.Path())
	}

	result, err := pack.NewBuilder(repo, opts, logger).Build(ctx)
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(result.Document), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✅ Packed %d files, %d commits (~%d tokens) into %s\n",
			result.FileCount, result.CommitCount, result.TokenCount, output)
	} else {
		fmt.Print(result.Document)
	}

	recordRun(result, output)
	return nil
}

// packOptions merges config defaults with command-line overrides.
func packOptions(cmd *cobra.Command) pack.Options {
	opts := pack.Options{
		CommitCount:  cfg.Pack.CommitCount,
		IncludeStats: cfg.Pack.IncludeStats,
		MaxFileSize:  cfg.Pack.MaxFileSize,
		Exclude:      cfg.Pack.Exclude,
		Format:       cfg.Pack.Format,
	}

	if n, _ := cmd.Flags().GetInt("commits"); n >= 0 {
		opts.CommitCount = n
	}
	if cmd.Flags().Changed("stats") {
		opts.IncludeStats, _ = cmd.Flags().GetBool("stats")
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		opts.Format = format
	}
	if include, _ := cmd.Flags().GetStringSlice("include"); len(include) > 0 {
		opts.Include = include
	}
	if exclude, _ := cmd.Flags().GetStringSlice("exclude"); len(exclude) > 0 {
		opts.Exclude = append(opts.Exclude, exclude...)
	}
	if size, _ := cmd.Flags().GetInt64("max-file-size"); size > 0 {
		opts.MaxFileSize = size
	}

	return opts
}

// cloneRemote shallow-clones a GitHub repository into a temp directory.
func cloneRemote(cmd *cobra.Command, remote string) (string, func(), error) {
	ctx := cmd.Context()

	owner, name, err := github.ParseRemote(remote)
	if err != nil {
		return "", nil, err
	}

	client := github.NewClient(cfg.GitHub.Token, cfg.GitHub.RateLimit)
	repo, err := client.FetchRepository(ctx, owner, name)
	if err != nil {
		return "", nil, err
	}

	baseDir, err := os.MkdirTemp("", "repotext-clone-")
	if err != nil {
		return "", nil, fmt.Errorf("create temp directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(baseDir) }

	logger.WithField("repo", repo.FullName).Info("Cloning remote repository")
	dest, err := client.Clone(ctx, repo, baseDir, cfg.GitHub.CloneDepth)
	if err != nil {
		cleanup()
		return "", nil, err
	}

	return dest, cleanup, nil
}

// recordRun saves the run to local history. Failures only warn; the
// snapshot itself already succeeded.
func recordRun(result *pack.Result, output string) {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.WithError(err).Warn("Failed to open run history")
		return
	}
	defer s.Close()

	err = s.SaveRun(store.Run{
		ID:          result.ID,
		Repo:        result.Repo,
		GeneratedAt: result.GeneratedAt,
		Files:       result.FileCount,
		Commits:     result.CommitCount,
		Tokens:      result.TokenCount,
		Output:      output,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to record run")
	}
}
