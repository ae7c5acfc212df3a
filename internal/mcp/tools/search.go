package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/pkg/types"
)

// SearchEndpointsInput is the input for insightone_search_endpoints.
type SearchEndpointsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Free text matched against endpoint names, paths, summaries and parameter names. Tokens are ANDed; tokens of 3+ characters also match as prefixes."`
	Tier   string `json:"tier,omitempty" jsonschema:"Restrict to a tier: basique, pro or entreprise"`
	Method string `json:"method,omitempty" jsonschema:"Restrict to an HTTP method"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default: 20, max: 200)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Pagination offset"`
}

// SearchEndpointsOutput is the output for insightone_search_endpoints.
type SearchEndpointsOutput struct {
	Results []types.SearchResult `json:"results,omitzero"`
	Total   int                  `json:"total"`
	Hint    string               `json:"hint,omitempty"`
}

// ToolSearchEndpoints searches the endpoint index.
func ToolSearchEndpoints(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchEndpointsInput) (*sdkmcp.CallToolResult, SearchEndpointsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchEndpointsInput) (*sdkmcp.CallToolResult, SearchEndpointsOutput, error) {
		tier, err := parseTierInput(input.Tier)
		if err != nil {
			return nil, SearchEndpointsOutput{}, err
		}

		resp, err := d.Search.Search(ctx, &types.SearchRequest{
			Query:  input.Query,
			Tier:   string(tier),
			Method: input.Method,
			Limit:  input.Limit,
			Offset: max(input.Offset, 0),
		})
		if err != nil {
			return nil, SearchEndpointsOutput{}, WrapCatalogError(err)
		}

		var hint string
		switch {
		case len(resp.Results) == 0:
			hint = "No matches. Try fewer or shorter terms, or drop the tier/method filters."
		case resp.Total > len(resp.Results):
			hint = fmt.Sprintf("Showing %d of %d. Use offset=%d for the next page.", len(resp.Results), resp.Total, max(input.Offset, 0)+len(resp.Results))
		case len(resp.Results) == 1:
			hint = fmt.Sprintf("Single match. Use insightone_describe_endpoint(endpoint_id=%q) for its parameters.", resp.Results[0].Endpoint.ID)
		default:
			hint = "Use insightone_describe_endpoint with an endpoint id for its parameters."
		}

		return nil, SearchEndpointsOutput{
			Results: resp.Results,
			Total:   resp.Total,
			Hint:    hint,
		}, nil
	}
}
