package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/cache"
	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/internal/config"
	"github.com/insightone/insightone-mcp/internal/indexer"
	"github.com/insightone/insightone-mcp/internal/logging"
	"github.com/insightone/insightone-mcp/internal/mcp"
	"github.com/insightone/insightone-mcp/internal/mcp/tools"
	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/internal/search"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// Server is the InsightOne explorer MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin explorer tools.
//
// The client is required: it fetches the catalog and its base URL is where
// endpoint calls are sent. Use functional options to configure logging, add
// custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("client is required")
	}

	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := cfg.config.Logging()
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	deps, err := buildDeps(c, cfg)
	if err != nil {
		_ = logCleanup()
		return nil, err
	}

	toolDeps := &tools.Deps{
		Config:   deps.Config,
		Catalog:  deps.Catalog,
		Indexer:  deps.Indexer,
		Search:   deps.Search,
		Executor: deps.Executor,
		Tokens:   deps.Tokens,
		Results:  deps.Results,
		Query:    deps.Query,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.registrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.depsRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

func buildDeps(c *client.Client, cfg *serverConfig) (*Deps, error) {
	conf := cfg.config
	if cfg.catalogFile != "" {
		conf.CatalogFile = cfg.catalogFile
	}

	load := catalog.FromClient(c)
	if conf.CatalogFile != "" {
		load = catalog.FromFile(conf.CatalogFile)
	}

	idx := indexer.New()
	store := catalog.NewStore(load,
		catalog.WithTTL(conf.CatalogTTL),
		catalog.OnLoad(idx.Rebuild),
	)

	results, err := cache.NewResultCache(conf.ResultCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = c.HTTPClient()
	}

	return &Deps{
		Client:   c,
		Config:   conf,
		Catalog:  store,
		Indexer:  idx,
		Search:   search.New(idx, store, conf.DefaultSearchLimit, conf.MaxSearchLimit),
		Executor: explorer.NewExecutor(c.BaseURL(), explorer.WithHTTPClient(httpClient)),
		Tokens:   explorer.NewTokenStore(),
		Results:  results,
		Query:    query.NewEngine(query.DefaultMaxResults),
	}, nil
}

// Run starts the MCP server with stdio transport. The catalog is loaded in
// the background so the first tool call rarely waits for it. The server runs
// until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		if err := s.deps.Catalog.Ensure(ctx); err != nil {
			slog.Warn("initial catalog load failed, retrying on first use", slog.String("error", err.Error()))
		}
	}()
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
