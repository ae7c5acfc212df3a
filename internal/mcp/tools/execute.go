package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/pkg/contenttype"
	"github.com/insightone/insightone-mcp/pkg/explorer"
	"github.com/insightone/insightone-mcp/pkg/jsoncompact"
)

// SetTokenInput is the input for insightone_set_token.
type SetTokenInput struct {
	EndpointID string `json:"endpoint_id" jsonschema:"required,Endpoint the token is used for"`
	Token      string `json:"token,omitempty" jsonschema:"Bearer token. Empty removes the stored token."`
}

// SetTokenOutput is the output for insightone_set_token.
type SetTokenOutput struct {
	EndpointID string `json:"endpoint_id"`
	Stored     bool   `json:"stored"`
	Tokens     int    `json:"tokens"`
}

// ToolSetToken stores the bearer token used for an endpoint. Tokens live in
// memory for the lifetime of the server.
func ToolSetToken(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SetTokenInput) (*sdkmcp.CallToolResult, SetTokenOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SetTokenInput) (*sdkmcp.CallToolResult, SetTokenOutput, error) {
		if input.EndpointID == "" {
			return nil, SetTokenOutput{}, ErrInvalidInput("endpoint_id is required")
		}
		if _, err := d.Endpoint(ctx, input.EndpointID); err != nil {
			return nil, SetTokenOutput{}, err
		}

		d.Tokens.Set(input.EndpointID, input.Token)
		return nil, SetTokenOutput{
			EndpointID: input.EndpointID,
			Stored:     input.Token != "",
			Tokens:     d.Tokens.Len(),
		}, nil
	}
}

// ExecuteInput is the input for insightone_execute.
type ExecuteInput struct {
	EndpointID     string            `json:"endpoint_id" jsonschema:"required,Endpoint id from list or search"`
	Params         map[string]string `json:"params,omitempty" jsonschema:"Parameter values by name. Unset parameters keep their defaults; empty values are left out of the query."`
	Token          string            `json:"token,omitempty" jsonschema:"Bearer token. When set it is also stored for later calls."`
	BodyMode       string            `json:"body_mode,omitempty" jsonschema:"How to show a JSON payload: compact (default), full or schema"`
	JQ             string            `json:"jq,omitempty" jsonschema:"jq expression applied to a JSON payload"`
	IncludeHeaders bool              `json:"include_headers,omitempty" jsonschema:"Include response headers. Default: false"`
}

// ExecuteOutput is the output for insightone_execute.
type ExecuteOutput struct {
	Result          *ResultView `json:"result"`
	IgnoredParams   []string    `json:"ignored_params,omitempty"`
	MissingRequired []string    `json:"missing_required,omitempty"`
}

// ToolExecute calls an endpoint once with the stored token. HTTP and network
// failures come back as a failed result rather than a tool error.
func ToolExecute(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExecuteInput) (*sdkmcp.CallToolResult, ExecuteOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExecuteInput) (*sdkmcp.CallToolResult, ExecuteOutput, error) {
		if input.EndpointID == "" {
			return nil, ExecuteOutput{}, ErrInvalidInput("endpoint_id is required")
		}
		if !ValidBodyMode(input.BodyMode) {
			return nil, ExecuteOutput{}, ErrInvalidInput("body_mode must be 'compact', 'full' or 'schema'")
		}
		if input.JQ != "" {
			if err := d.Query.ValidateExpression(input.JQ); err != nil {
				return nil, ExecuteOutput{}, ErrInvalidInput(err.Error())
			}
		}

		ep, err := d.Endpoint(ctx, input.EndpointID)
		if err != nil {
			return nil, ExecuteOutput{}, err
		}
		ignored := ep.SetValues(input.Params)

		if input.Token != "" {
			d.Tokens.Set(ep.ID, input.Token)
		}

		res, err := d.Executor.Run(ctx, ep, d.Tokens.Get(ep.ID))
		if err != nil {
			var missing *explorer.MissingTokenError
			if errors.As(err, &missing) {
				return nil, ExecuteOutput{}, ErrMissingToken(ep.ID, err)
			}
			return nil, ExecuteOutput{}, fmt.Errorf("executing %s: %w", ep.ID, err)
		}
		d.Results.Put(res)

		view, err := NewResultView(res, d.viewOptions(input.BodyMode, input.IncludeHeaders))
		if err != nil {
			return nil, ExecuteOutput{}, err
		}
		switch {
		case input.JQ == "" || res.Failed():
		case res.ContentKind != contenttype.KindJSON:
			view.Hint = strings.TrimSpace("jq was not applied: the response is not JSON. " + view.Hint)
		default:
			if err := ApplyJQ(d.Query, res, view, input.JQ); err != nil {
				return nil, ExecuteOutput{}, err
			}
		}

		return nil, ExecuteOutput{
			Result:          view,
			IgnoredParams:   ignored,
			MissingRequired: ep.MissingRequired(),
		}, nil
	}
}

// RenderCurlInput is the input for insightone_render_curl.
type RenderCurlInput struct {
	EndpointID string            `json:"endpoint_id" jsonschema:"required,Endpoint id from list or search"`
	Params     map[string]string `json:"params,omitempty" jsonschema:"Parameter values by name"`
	Token      string            `json:"token,omitempty" jsonschema:"Token to embed (default: the stored token, else a placeholder). Not stored."`
}

// RenderCurlOutput is the output for insightone_render_curl.
type RenderCurlOutput struct {
	Curl          string   `json:"curl"`
	URL           string   `json:"url"`
	Placeholder   bool     `json:"placeholder_token,omitempty"`
	IgnoredParams []string `json:"ignored_params,omitempty"`
}

// ToolRenderCurl renders the cURL command equivalent to insightone_execute.
func ToolRenderCurl(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderCurlInput) (*sdkmcp.CallToolResult, RenderCurlOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderCurlInput) (*sdkmcp.CallToolResult, RenderCurlOutput, error) {
		if input.EndpointID == "" {
			return nil, RenderCurlOutput{}, ErrInvalidInput("endpoint_id is required")
		}

		ep, err := d.Endpoint(ctx, input.EndpointID)
		if err != nil {
			return nil, RenderCurlOutput{}, err
		}
		ignored := ep.SetValues(input.Params)

		token := input.Token
		if token == "" {
			token = d.Tokens.Get(ep.ID)
		}

		return nil, RenderCurlOutput{
			Curl:          explorer.RenderCurl(d.Executor.BaseURL(), ep, token),
			URL:           explorer.RequestURL(d.Executor.BaseURL(), ep),
			Placeholder:   token == "",
			IgnoredParams: ignored,
		}, nil
	}
}

func (d *Deps) viewOptions(bodyMode string, includeHeaders bool) ViewOptions {
	return ViewOptions{
		BodyMode: bodyMode,
		Compact: jsoncompact.Options{
			MaxArrayItems: d.Config.CompactMaxArrayItems,
			MaxStringLen:  d.Config.CompactMaxStringLen,
			MaxDepth:      d.Config.CompactMaxDepth,
		},
		CSVPreview:     d.Config.CSVPreviewChars,
		IncludeHeaders: includeHeaders,
	}
}
