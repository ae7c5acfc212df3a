package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/insightone/insightone-mcp/internal/config"
	"github.com/insightone/insightone-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables:
	// - INSIGHTONE_API_URL: API base URL (default http://localhost:8000)
	// - INSIGHTONE_API_TOKEN: service token for the catalog route
	// - INSIGHTONE_CATALOG_FILE: offline catalog snapshot instead of the route
	// - LOG_LEVEL, LOG_FILE: logging (stderr only by default)
	// - etc. (see internal/config for all options)
	cfg := config.Load()

	server, err := mcpsrv.NewServer(cfg.NewClient(), mcpsrv.WithConfig(cfg))
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting InsightOne MCP server on stdio", "api_url", cfg.APIBaseURL)
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
