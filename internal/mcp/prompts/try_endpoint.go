package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleTryEndpoint implements the try_endpoint workflow.
func HandleTryEndpoint(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var endpoint, tier string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			endpoint = strings.TrimSpace(req.Params.Arguments["endpoint"])
			tier = strings.TrimSpace(req.Params.Arguments["tier"])
		}

		var sb strings.Builder
		sb.WriteString("# Try an InsightOne Endpoint\n\n")
		sb.WriteString("You are helping a developer explore the InsightOne financial data API. ")
		sb.WriteString("Each endpoint belongs to a subscription tier and takes query parameters; ")
		fmt.Fprintf(&sb, "requests go to `%s/api<path>` with a bearer token.\n\n", strings.TrimRight(cfg.APIBaseURL, "/"))

		sb.WriteString("## Workflow\n\n")
		sb.WriteString("1. **Find the endpoint**\n")
		sb.WriteString("```\n")
		switch {
		case endpoint != "" && !strings.Contains(endpoint, " "):
			fmt.Fprintf(&sb, "insightone_describe_endpoint(endpoint_id=%q)\n", endpoint)
			sb.WriteString("# if NOT_FOUND, search instead:\n")
			fmt.Fprintf(&sb, "insightone_search_endpoints(query=%q%s)\n", strings.ReplaceAll(endpoint, "_", " "), tierArg(tier))
		case endpoint != "":
			fmt.Fprintf(&sb, "insightone_search_endpoints(query=%q%s)\n", endpoint, tierArg(tier))
		default:
			fmt.Fprintf(&sb, "insightone_list_endpoints(%s)\n", strings.TrimPrefix(tierArg(tier), ", "))
		}
		sb.WriteString("```\n\n")

		sb.WriteString("2. **Read the form** from `insightone_describe_endpoint`\n")
		sb.WriteString("   - `kind: enum` parameters only accept one of `options`; the first option is preselected\n")
		sb.WriteString("   - `required: true` means the catalog gives no default. The API may reject the call when it is empty, the explorer does not block it\n")
		sb.WriteString("   - A `format` parameter set to `csv` makes the API answer in CSV\n\n")

		sb.WriteString("3. **Store a token** (once per endpoint, kept in memory until the server stops)\n")
		sb.WriteString("```\n")
		sb.WriteString("insightone_set_token(endpoint_id=\"<id>\", token=\"<user token>\")\n")
		sb.WriteString("```\n")
		sb.WriteString("   Ask the user for the token. Never invent one. Without it `insightone_execute` fails with MISSING_TOKEN and sends nothing.\n\n")

		sb.WriteString("4. **Execute**\n")
		sb.WriteString("```\n")
		sb.WriteString("insightone_execute(endpoint_id=\"<id>\", params={\"symbol\": \"AAPL\"})\n")
		sb.WriteString("```\n")
		sb.WriteString("   - JSON payloads are compacted; use `jq` or `insightone_query_result` to pull fields\n")
		sb.WriteString("   - A `failed: true` result carries the real HTTP status and the API's error detail\n")
		sb.WriteString("   - CSV results show a preview; the full text is at the `resource.uri`\n\n")

		sb.WriteString("5. **Share a reproducible call**\n")
		sb.WriteString("```\n")
		sb.WriteString("insightone_render_curl(endpoint_id=\"<id>\", params={...})\n")
		sb.WriteString("```\n\n")

		if cfg.OfflineCatalog {
			sb.WriteString("Note: the catalog comes from a local snapshot and may lag behind the live API.\n\n")
		}

		sb.WriteString("## Expected Output\n\n")
		sb.WriteString("Summarize the endpoint (tier, method, path), the parameter values used, the status, ")
		sb.WriteString("and the key fields of the payload. Include the cURL command.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Try an InsightOne endpoint",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

func tierArg(tier string) string {
	if tier == "" {
		return ""
	}
	return fmt.Sprintf(", tier=%q", tier)
}
