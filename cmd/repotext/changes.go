package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repotext/repotext/internal/git"
)

var changesCmd = &cobra.Command{
	Use:   "changes [path]",
	Short: "List uncommitted changes in the working tree",
	Long: `Changes lists files that differ from HEAD, staged or not, one
status letter and path per line.

Examples:
  # Current directory
  repotext changes

  # Another checkout, as JSON
  repotext changes ~/src/myproject --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChanges,
}

func init() {
	changesCmd.Flags().Bool("json", false, "Emit JSON instead of text")
}

func runChanges(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	repo := git.NewRepo(path)
	changes, err := repo.UncommittedChanges(ctx)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(changes)
	}

	if len(changes) == 0 {
		fmt.Println("Working tree clean.")
		return nil
	}

	for _, fc := range changes {
		fmt.Printf("%s\t%s\n", fc.Status, fc.Path)
	}
	return nil
}
