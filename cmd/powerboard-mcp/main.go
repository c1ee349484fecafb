package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"powerboard/internal/adapters/browser"
	"powerboard/internal/adapters/bungie"
	mcpadapter "powerboard/internal/adapters/mcp"
	"powerboard/internal/adapters/sqlite"
	"powerboard/internal/config"
	"powerboard/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("powerboard-mcp: %v", err)
	}

	logger, err := logging.NewFile(cfg.LogFile, false)
	if err != nil {
		log.Fatalf("powerboard-mcp: %v", err)
	}
	defer logger.Sync()

	store, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("powerboard-mcp: %v", err)
	}
	defer store.Close()

	client := bungie.NewClient(cfg.APIKey, bungie.WithClientLogger(logger))
	gateway := bungie.NewGateway(client, cfg.OAuthClientID, store, store, browser.NewOpener(), logger)
	manifest := bungie.NewManifestService(client, store, logger)
	source := bungie.NewCharacterSource(client, gateway, manifest, logger)

	mcpServer := server.NewMCPServer(
		"powerboard-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{Auth: gateway, Source: source, Manifest: manifest, Orders: store}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("powerboard-mcp: %v", err)
	}
}
