package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repotext/repotext/internal/git"
)

var logCmd = &cobra.Command{
	Use:   "log [path]",
	Short: "Show recent commit history with changed files",
	Long: `Log shows recent commits together with the files each one touched
and, optionally, change statistics.

Examples:
  # Last 10 commits of the current directory
  repotext log

  # Last 3 commits, no stats
  repotext log -n 3 --stats=false

  # JSON output for scripting
  repotext log --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", 10, "Max commits to show")
	logCmd.Flags().Bool("stats", true, "Include change statistics")
	logCmd.Flags().Bool("json", false, "Emit JSON instead of text")
	logCmd.Flags().Int("workers", 0, "Concurrent per-commit metadata queries")
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	limit, _ := cmd.Flags().GetInt("limit")
	includeStats, _ := cmd.Flags().GetBool("stats")

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	repo := git.NewRepo(path)
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		repo.Workers = workers
	} else {
		repo.Workers = cfg.Pack.Workers
	}

	commits, err := repo.Commits(ctx, limit, includeStats)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(commits)
	}

	if len(commits) == 0 {
		fmt.Println("No commits found.")
		return nil
	}

	for _, c := range commits {
		fmt.Printf("%s %s %s <%s>\n", c.ShortHash, c.Date, c.Author, c.Email)
		fmt.Printf("    %s\n", c.Subject)
		if c.Stats != "" {
			fmt.Printf("    %s\n", c.Stats)
		}
		for _, fc := range c.Files {
			fmt.Printf("    %s %s\n", fc.Status, fc.Path)
		}
		fmt.Println()
	}
	return nil
}
