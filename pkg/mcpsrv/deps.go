package mcpsrv

import (
	"github.com/insightone/insightone-mcp/internal/cache"
	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/internal/config"
	"github.com/insightone/insightone-mcp/internal/indexer"
	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/internal/search"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client   *client.Client
	Config   *config.Config
	Catalog  *catalog.Store
	Indexer  *indexer.Indexer
	Search   *search.SearchEngine
	Executor *explorer.Executor
	Tokens   *explorer.TokenStore
	Results  *cache.ResultCache
	Query    *query.Engine
}
