package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpserver "github.com/claude/gymlog/internal/mcp"
)

// Version is reported to MCP clients. Set at build time via -ldflags.
var Version = "dev"

func init() {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Long:  "Serves the gymlog MCP tools over stdio. With --remote the tools call a running gymlog server instead of the database.",
		Run:   runMCP,
	}
	cmd.Flags().String("remote", "", "Base URL of a gymlog server, e.g. http://gymlog.tailnet:80")

	RootCmd.AddCommand(cmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	remote, _ := cmd.Flags().GetString("remote")

	// stdout carries the protocol; logs go to stderr only.
	log := newLogger()

	var ds mcpserver.DataSource
	if remote != "" {
		ds = mcpserver.NewHTTPClient(remote)
	} else {
		e := openService(cmd.Context())
		defer e.Close()
		ds = &mcpserver.Local{DB: e.db, Workouts: e.workouts}
	}

	if err := server.ServeStdio(mcpserver.New(ds, Version, log)); err != nil {
		exitErr("mcp", err)
	}
}
