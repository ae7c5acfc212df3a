package tools

import (
	"context"

	"github.com/insightone/insightone-mcp/internal/cache"
	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/internal/config"
	"github.com/insightone/insightone-mcp/internal/indexer"
	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/internal/search"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config   *config.Config
	Catalog  *catalog.Store
	Indexer  *indexer.Indexer
	Search   *search.SearchEngine
	Executor *explorer.Executor
	Tokens   *explorer.TokenStore
	Results  *cache.ResultCache
	Query    *query.Engine
}

// Endpoint returns a fresh form for id with values reset to defaults.
func (d *Deps) Endpoint(ctx context.Context, id string) (*explorer.Endpoint, error) {
	ep, err := d.Catalog.Get(ctx, id)
	if err != nil {
		return nil, WrapCatalogError(err)
	}
	return ep, nil
}

// Result returns a cached execution result.
func (d *Deps) Result(id string) (*explorer.ExecutionResult, error) {
	res, ok := d.Results.Get(id)
	if !ok {
		return nil, ErrNotFound("result", id)
	}
	return res, nil
}
