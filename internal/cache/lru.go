// Package cache provides caching utilities for the MCP server.
package cache

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// ResultCache keeps the most recent execution results, addressable by id.
// It is safe for concurrent use.
type ResultCache struct {
	cache *lru.Cache[string, *explorer.ExecutionResult]
}

// NewResultCache creates a new LRU cache with the specified maximum number of items.
func NewResultCache(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, *explorer.ExecutionResult](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Put assigns a fresh id to res, stores it and returns the id.
func (c *ResultCache) Put(res *explorer.ExecutionResult) string {
	res.ID = uuid.NewString()
	c.cache.Add(res.ID, res)
	return res.ID
}

// Get retrieves a result by its id.
// Returns the result and true if found, nil and false otherwise.
func (c *ResultCache) Get(id string) (*explorer.ExecutionResult, bool) {
	return c.cache.Get(id)
}

// Recent returns up to n results, newest first. n <= 0 returns all.
func (c *ResultCache) Recent(n int) []*explorer.ExecutionResult {
	keys := c.cache.Keys() // oldest to newest
	out := make([]*explorer.ExecutionResult, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if n > 0 && len(out) >= n {
			break
		}
		if res, ok := c.cache.Peek(keys[i]); ok {
			out = append(out, res)
		}
	}
	return out
}

// Len returns the current number of items in the cache.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}
