package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_list_endpoints",
		Description: "List InsightOne API endpoints in catalog order, optionally for one subscription tier (basique, pro, entreprise). Returns {endpoints: [{id, name, method, path, tier, summary, parameters}], total, hint}. Use insightone_search_endpoints to find endpoints by keyword.",
	}, ToolListEndpoints(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_search_endpoints",
		Description: "Search endpoints by keywords across names, paths, summaries and parameter names. Tokens are ANDed; endpoints whose name matches rank first. Optional tier and method filters.",
	}, ToolSearchEndpoints(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_describe_endpoint",
		Description: "Get the request form of an endpoint: parameters with kind (text or enum), options, required flag, reset_value (catalog default, or first enum option) and declared type, the accept header, the equivalent cURL command and whether a token is stored.",
	}, ToolDescribeEndpoint(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_set_token",
		Description: "Store the bearer token used when calling an endpoint. Tokens are kept in memory only and persist across endpoint switches until the server stops. An empty token removes it.",
	}, ToolSetToken(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_execute",
		Description: "Call an endpoint once with parameter values and the stored token. Fails with MISSING_TOKEN, without any request, when no token is stored. HTTP errors come back as a failed result with the real status. JSON payloads are compact by default (body_mode=full or schema to change); CSV payloads return a preview and ignore jq. Every result gets a result_id for insightone_query_result and the insightone://result/{id} resource.",
	}, ToolExecute(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_render_curl",
		Description: "Render the cURL command that insightone_execute would run for the given parameter values. Uses the stored token, or a placeholder when none is stored.",
	}, ToolRenderCurl(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_refresh_catalog",
		Description: "Reload the endpoint catalog from the catalog service. Returns endpoint counts per tier, schema warnings and ids renamed to stay unique.",
	}, ToolRefreshCatalog(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_list_results",
		Description: "List cached execution results, newest first, with their result ids and resource URIs.",
	}, ToolListResults(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_query_result",
		Description: "Run a jq expression against the full JSON payload of a cached result. Use this instead of body_mode=full to pull specific fields from large payloads.",
	}, ToolQueryResult(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "insightone_validate_result",
		Description: "Validate the JSON payload of a cached result against a JSON Schema. Returns {valid, errors} with one error per failing location.",
	}, ToolValidateResult(d))
}
