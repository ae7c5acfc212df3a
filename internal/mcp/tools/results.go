package tools

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/schema"
	"github.com/insightone/insightone-mcp/pkg/contenttype"
)

// ListResultsInput is the input for insightone_list_results.
type ListResultsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results, newest first (default: 20)"`
}

// ResultSummary is a compact description of a cached result.
type ResultSummary struct {
	ResultID    string `json:"result_id"`
	EndpointID  string `json:"endpoint_id"`
	Method      string `json:"method"`
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ContentKind string `json:"content_kind"`
	Failed      bool   `json:"failed,omitempty"`
	URI         string `json:"uri"`
}

// ListResultsOutput is the output for insightone_list_results.
type ListResultsOutput struct {
	Results []ResultSummary `json:"results,omitzero"`
	Cached  int             `json:"cached"`
}

// ToolListResults lists the cached execution results.
func ToolListResults(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListResultsInput) (*sdkmcp.CallToolResult, ListResultsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListResultsInput) (*sdkmcp.CallToolResult, ListResultsOutput, error) {
		limit := clampLimit(input.Limit, d.Config.DefaultSearchLimit, d.Config.MaxSearchLimit)

		recent := d.Results.Recent(limit)
		output := ListResultsOutput{
			Results: make([]ResultSummary, 0, len(recent)),
			Cached:  d.Results.Len(),
		}
		for _, res := range recent {
			output.Results = append(output.Results, ResultSummary{
				ResultID:    res.ID,
				EndpointID:  res.EndpointID,
				Method:      res.Method,
				URL:         res.URL,
				Status:      res.Status,
				ContentKind: string(res.ContentKind),
				Failed:      res.Failed(),
				URI:         ResultURI(res.ID),
			})
		}
		return nil, output, nil
	}
}

// QueryResultInput is the input for insightone_query_result.
type QueryResultInput struct {
	ResultID   string `json:"result_id" jsonschema:"required,Result id returned by insightone_execute"`
	Expression string `json:"expression" jsonschema:"required,jq expression, e.g. '.data[] | {date, close}'"`
}

// QueryResultOutput is the output for insightone_query_result.
type QueryResultOutput struct {
	ResultID  string   `json:"result_id"`
	Values    []any    `json:"values,omitzero"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ToolQueryResult runs a jq expression against a cached JSON result.
func ToolQueryResult(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryResultInput) (*sdkmcp.CallToolResult, QueryResultOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryResultInput) (*sdkmcp.CallToolResult, QueryResultOutput, error) {
		if input.Expression == "" {
			return nil, QueryResultOutput{}, ErrInvalidInput("expression is required")
		}
		res, err := d.Result(input.ResultID)
		if err != nil {
			return nil, QueryResultOutput{}, err
		}

		view := &ResultView{}
		if err := ApplyJQ(d.Query, res, view, input.Expression); err != nil {
			return nil, QueryResultOutput{}, err
		}
		return nil, QueryResultOutput{
			ResultID:  res.ID,
			Values:    view.JQ.Values,
			Count:     view.JQ.Count,
			Truncated: view.JQ.Truncated,
			Errors:    view.JQ.Errors,
		}, nil
	}
}

// ValidateResultInput is the input for insightone_validate_result.
type ValidateResultInput struct {
	ResultID string `json:"result_id" jsonschema:"required,Result id returned by insightone_execute"`
	Schema   string `json:"schema" jsonschema:"required,JSON Schema document the payload must match"`
}

// ValidateResultOutput is the output for insightone_validate_result.
type ValidateResultOutput struct {
	ResultID string   `json:"result_id"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
}

// ToolValidateResult validates the JSON payload of a cached result against a
// JSON Schema.
func ToolValidateResult(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateResultInput) (*sdkmcp.CallToolResult, ValidateResultOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateResultInput) (*sdkmcp.CallToolResult, ValidateResultOutput, error) {
		if input.Schema == "" {
			return nil, ValidateResultOutput{}, ErrInvalidInput("schema is required")
		}
		validator, err := schema.NewValidator([]byte(input.Schema))
		if err != nil {
			return nil, ValidateResultOutput{}, ErrInvalidInput("invalid schema: " + err.Error())
		}

		res, err := d.Result(input.ResultID)
		if err != nil {
			return nil, ValidateResultOutput{}, err
		}
		if res.ContentKind != contenttype.KindJSON || res.Failed() {
			return nil, ValidateResultOutput{}, ErrInvalidInput("only successful JSON results can be validated")
		}

		data, err := json.Marshal(res.Payload)
		if err != nil {
			return nil, ValidateResultOutput{}, err
		}
		result := validator.Validate(data)
		return nil, ValidateResultOutput{
			ResultID: res.ID,
			Valid:    result.Valid,
			Errors:   result.Errors,
		}, nil
	}
}
