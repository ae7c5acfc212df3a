// Package search provides search over the endpoint index.
package search

import (
	"context"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/insightone/insightone-mcp/internal/indexer"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/types"
)

// Ensurer makes sure the index reflects a loaded catalog.
type Ensurer interface {
	Ensure(ctx context.Context) error
}

// SearchEngine provides search capabilities over the indexer.
type SearchEngine struct {
	indexer  *indexer.Indexer
	catalog  Ensurer
	defLimit int
	maxLimit int
}

// New creates a new SearchEngine. catalog may be nil when the index is
// populated directly.
func New(idx *indexer.Indexer, catalog Ensurer, defaultLimit, maxLimit int) *SearchEngine {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &SearchEngine{indexer: idx, catalog: catalog, defLimit: defaultLimit, maxLimit: maxLimit}
}

// Search returns the endpoints matching every query token and the filters.
// Results are ranked by how many tokens hit the endpoint name, then by
// catalog order. An empty query lists every endpoint that passes the filters.
func (s *SearchEngine) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	if s.catalog != nil {
		if err := s.catalog.Ensure(ctx); err != nil {
			return nil, err
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	tokens := indexer.Unique(indexer.Tokenize(req.Query))
	candidates := s.planFilters(req, tokens)

	results := s.scoreResults(candidates.ToArray(), tokens)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	start := min(req.Offset, len(results))
	end := min(start+limit, len(results))

	return &types.SearchResponse{
		Results: results[start:end],
		Total:   len(results),
	}, nil
}

// planFilters converts the request to bitmap operations.
func (s *SearchEngine) planFilters(req *types.SearchRequest, tokens []string) *roaring.Bitmap {
	result := s.indexer.AllDocIDs()

	if req.Tier != "" {
		bm := s.indexer.GetBitmapForTier(client.Tier(req.Tier))
		if bm == nil {
			return roaring.New()
		}
		result.And(bm)
	}

	if req.Method != "" {
		bm := s.indexer.GetBitmapForMethod(req.Method)
		if bm == nil {
			return roaring.New()
		}
		result.And(bm)
	}

	for _, tok := range tokens {
		bm := s.indexer.GetBitmapForToken(tok)
		if bm == nil {
			return roaring.New()
		}
		result.And(bm)
	}

	return result
}

// scoreResults applies ranking heuristics to produce scored results.
func (s *SearchEngine) scoreResults(docIDs []uint32, tokens []string) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(docIDs))
	for _, docID := range docIDs {
		ep, ok := s.indexer.GetDoc(docID)
		if !ok {
			continue
		}

		var score float64
		var matched []string
		for _, tok := range tokens {
			if s.indexer.NameContains(docID, tok) {
				score += 1.0
				matched = append(matched, tok)
			} else {
				score += 0.5
			}
		}
		if len(tokens) > 0 {
			score /= float64(len(tokens))
		}

		results = append(results, types.SearchResult{
			Endpoint: types.Summarize(ep),
			Score:    score,
			Matched:  matched,
		})
	}
	return results
}
