package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
	"github.com/insightone/insightone-mcp/pkg/types"
)

// ListEndpointsInput is the input for insightone_list_endpoints.
type ListEndpointsInput struct {
	Tier   string `json:"tier,omitempty" jsonschema:"Subscription tier: basique, pro or entreprise (default: all tiers)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max endpoints (default: 20, max: 200)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Pagination offset"`
}

// ListEndpointsOutput is the output for insightone_list_endpoints.
type ListEndpointsOutput struct {
	Endpoints []types.EndpointSummary `json:"endpoints,omitzero"`
	Total     int                     `json:"total"`
	Resource  types.ResourceRef       `json:"resource"`
	Hint      string                  `json:"hint,omitempty"`
}

// ToolListEndpoints lists catalog endpoints in catalog order.
func ToolListEndpoints(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListEndpointsInput) (*sdkmcp.CallToolResult, ListEndpointsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListEndpointsInput) (*sdkmcp.CallToolResult, ListEndpointsOutput, error) {
		tier, err := parseTierInput(input.Tier)
		if err != nil {
			return nil, ListEndpointsOutput{}, err
		}

		endpoints, err := d.Catalog.List(ctx, tier)
		if err != nil {
			return nil, ListEndpointsOutput{}, WrapCatalogError(err)
		}

		limit := clampLimit(input.Limit, d.Config.DefaultSearchLimit, d.Config.MaxSearchLimit)
		start := min(max(input.Offset, 0), len(endpoints))
		end := min(start+limit, len(endpoints))

		output := ListEndpointsOutput{
			Endpoints: make([]types.EndpointSummary, 0, end-start),
			Total:     len(endpoints),
			Resource: types.ResourceRef{
				URI:  CatalogURI(tier),
				MIME: MimeJSON,
				Hint: "Normalized forms of every listed endpoint",
			},
		}
		for i := start; i < end; i++ {
			output.Endpoints = append(output.Endpoints, types.Summarize(&endpoints[i]))
		}

		switch {
		case len(endpoints) == 0:
			output.Hint = "The catalog has no endpoints for this tier."
		case end < len(endpoints):
			output.Hint = fmt.Sprintf("Showing %d of %d. Use offset=%d for the next page, or insightone_search_endpoints to narrow.", end-start, len(endpoints), end)
		default:
			output.Hint = "Use insightone_describe_endpoint with an id to see its parameters."
		}
		return nil, output, nil
	}
}

// DescribeEndpointInput is the input for insightone_describe_endpoint.
type DescribeEndpointInput struct {
	EndpointID string `json:"endpoint_id" jsonschema:"required,Endpoint id from list or search"`
}

// DescribeEndpointOutput is the output for insightone_describe_endpoint.
type DescribeEndpointOutput struct {
	Endpoint        *explorer.Endpoint `json:"endpoint"`
	Curl            string             `json:"curl"`
	TokenStored     bool               `json:"token_stored"`
	MissingRequired []string           `json:"missing_required,omitempty"`
	Hint            string             `json:"hint,omitempty"`
}

// ToolDescribeEndpoint returns the normalized form of one endpoint with its
// default values and the matching cURL command.
func ToolDescribeEndpoint(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeEndpointInput) (*sdkmcp.CallToolResult, DescribeEndpointOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeEndpointInput) (*sdkmcp.CallToolResult, DescribeEndpointOutput, error) {
		if input.EndpointID == "" {
			return nil, DescribeEndpointOutput{}, ErrInvalidInput("endpoint_id is required")
		}

		ep, err := d.Endpoint(ctx, input.EndpointID)
		if err != nil {
			return nil, DescribeEndpointOutput{}, err
		}

		token := d.Tokens.Get(ep.ID)
		output := DescribeEndpointOutput{
			Endpoint:        ep,
			Curl:            explorer.RenderCurl(d.Executor.BaseURL(), ep, token),
			TokenStored:     token != "",
			MissingRequired: ep.MissingRequired(),
		}
		if !output.TokenStored {
			output.Hint = fmt.Sprintf("No token stored. Call insightone_set_token(endpoint_id=%q) before insightone_execute.", ep.ID)
		} else {
			output.Hint = "Call insightone_execute with params to try this endpoint."
		}
		return nil, output, nil
	}
}

// RefreshCatalogInput is the input for insightone_refresh_catalog.
type RefreshCatalogInput struct{}

// CatalogInfo describes the loaded catalog.
type CatalogInfo struct {
	Endpoints  int              `json:"endpoints"`
	ByTier     map[string]int   `json:"by_tier,omitempty"`
	LoadedAtMs int64            `json:"loaded_at_ms"`
	Warnings   []string         `json:"warnings,omitempty"`
	Renamed    []catalog.Rename `json:"renamed,omitempty"`
}

// NewCatalogInfo converts store info for display.
func NewCatalogInfo(info *catalog.Info) CatalogInfo {
	out := CatalogInfo{
		Endpoints:  info.Endpoints,
		ByTier:     make(map[string]int, len(info.ByTier)),
		LoadedAtMs: info.LoadedAt.UnixMilli(),
		Warnings:   info.Warnings,
		Renamed:    info.Renamed,
	}
	for t, n := range info.ByTier {
		out.ByTier[string(t)] = n
	}
	return out
}

// ToolRefreshCatalog reloads the catalog from the catalog route.
func ToolRefreshCatalog(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RefreshCatalogInput) (*sdkmcp.CallToolResult, CatalogInfo, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RefreshCatalogInput) (*sdkmcp.CallToolResult, CatalogInfo, error) {
		info, err := d.Catalog.Refresh(ctx)
		if err != nil {
			return nil, CatalogInfo{}, WrapCatalogError(err)
		}
		return nil, NewCatalogInfo(info), nil
	}
}

func parseTierInput(s string) (client.Tier, error) {
	if s == "" {
		return "", nil
	}
	tier, ok := client.ParseTier(s)
	if !ok {
		return "", ErrInvalidInput(fmt.Sprintf("unknown tier %q (use basique, pro or entreprise)", s))
	}
	return tier, nil
}
