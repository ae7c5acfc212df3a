package prompts

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleExplorerGuide serves the tool usage reference.
func HandleExplorerGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Explorer Tool Guide\n\n")

		sb.WriteString("## Finding Endpoints\n\n")
		sb.WriteString("| Goal | Tool | Example |\n")
		sb.WriteString("|------|------|--------|\n")
		sb.WriteString("| Browse a tier | `insightone_list_endpoints` | `tier: \"pro\"` |\n")
		sb.WriteString("| Find by keyword | `insightone_search_endpoints` | `query: \"dividend history\"` |\n")
		sb.WriteString("| See parameters | `insightone_describe_endpoint` | `endpoint_id: \"get_quote\"` |\n")

		sb.WriteString("\n## Body Modes (`insightone_execute`)\n")
		sb.WriteString("- `compact` (default): arrays trimmed with a \"... (N more items)\" marker, long strings cut\n")
		sb.WriteString("- `schema`: inferred JSON Schema of the payload, no values\n")
		sb.WriteString("- `full`: complete payload (use sparingly)\n")
		sb.WriteString("- CSV results always return a preview with columns and row count\n")

		sb.WriteString("\n## JQ Quick Reference\n")
		sb.WriteString("- `.data[] | {date, close}` - pick fields from each record\n")
		sb.WriteString("- `.[] | select(.volume > 1000000)` - filter records\n")
		sb.WriteString("- `keys` - list top-level keys\n")
		sb.WriteString("- `length` - count records\n")

		sb.WriteString("\n## Tokens\n")
		sb.WriteString("- Tokens are stored per endpoint id and kept for the server lifetime, never on disk\n")
		sb.WriteString("- `insightone_execute(token=...)` also stores the token\n")
		sb.WriteString("- `insightone_set_token` with an empty token removes it\n")

		sb.WriteString("\n## Resources\n")
		sb.WriteString("- `insightone://result/{id}`: full payload of a cached result (CSV as text/csv)\n")
		sb.WriteString("- `insightone://catalog/{tier}`: normalized forms of a tier, or `all`\n")
		sb.WriteString("- `insightone://openapi`: the catalog as an OpenAPI 3 document\n")

		if cfg.OfflineCatalog {
			sb.WriteString("\nThe catalog is loaded from a snapshot file; `insightone_refresh_catalog` re-reads that file.\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide for the explorer tools",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
