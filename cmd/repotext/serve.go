package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/repotext/repotext/internal/logging"
	"github.com/repotext/repotext/internal/mcp"
	"github.com/repotext/repotext/internal/mcp/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Serve runs a Model Context Protocol server over stdio, exposing
repository metadata and snapshot assembly as tools for language model
agents.

Tools:
  repotext.get_changes      uncommitted working-tree changes
  repotext.get_commits      recent commit history
  repotext.pack_repository  full snapshot document

Stdout carries protocol traffic; logs go to stderr and --log-file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("log-file", "", "Also write logs to this file")
}

func runServe(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if err := logging.Initialize(logging.Config{
		Level:      level,
		OutputFile: logFile,
		JSONFormat: logFile != "",
	}); err != nil {
		return err
	}
	defer logging.Close()

	handler := mcp.NewHandler()
	handler.RegisterTool("repotext.get_changes", tools.NewGetChangesTool())
	handler.RegisterTool("repotext.get_commits", tools.NewGetCommitsTool(cfg.Pack.Workers))
	handler.RegisterTool("repotext.pack_repository", tools.NewPackRepositoryTool(cfg))
	logging.Info("registered tools", "count", 3)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := mcp.NewStdioTransport(handler, os.Stdin, os.Stdout)
	logging.Info("MCP server started on stdio")

	if err := transport.Start(ctx); err != nil {
		return fmt.Errorf("transport error: %w", err)
	}
	return nil
}
