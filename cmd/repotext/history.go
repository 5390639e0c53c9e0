package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/repotext/repotext/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past snapshot runs",
	Long: `History lists snapshot runs recorded by 'repotext pack', newest
first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Max runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No snapshot runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		dest := run.Output
		if dest == "" {
			dest = "(stdout)"
		}
		fmt.Printf("%s  %-30s  %4d files  %3d commits  ~%d tokens  %s\n",
			run.GeneratedAt.Local().Format(time.DateTime),
			run.Repo, run.Files, run.Commits, run.Tokens, dest)
	}
	return nil
}
