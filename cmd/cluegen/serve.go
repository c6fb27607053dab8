package main

import (
	"context"

	"github.com/spf13/cobra"

	"cluegen/internal/mcp"
	"cluegen/internal/telemetry"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, "cluegen-mcp")
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	cfg, pop, err := loadProject(configPath)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	server := mcp.NewServer(cfg, pop, db, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
