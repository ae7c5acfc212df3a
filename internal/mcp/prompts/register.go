package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "try_endpoint",
		Description: "RECOMMENDED: Walk through trying an InsightOne endpoint: find it, fill its parameters, store a token, execute and read the result.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "endpoint",
				Description: "Endpoint id, or keywords to search for (e.g. 'historical prices')",
				Required:    false,
			},
			{
				Name:        "tier",
				Description: "Subscription tier to stay within: basique, pro or entreprise",
				Required:    false,
			},
		},
	}, HandleTryEndpoint(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "explorer_guide",
		Description: "Reference for the explorer tools: body modes, jq filtering, tokens and resources.",
	}, HandleExplorerGuide(cfg))
}
