// Package mcpsrv provides an extensible MCP server for the InsightOne API
// explorer.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin explorer tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with configuration from the environment:
//
//	server, err := mcpsrv.NewServer(client.New(client.WithBaseURL("https://api.insightone.example")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Tools that need the catalog, the executor or the result cache are
// registered with WithDepsTool:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_endpoints", Description: "Count endpoints of a tier"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            eps, err := d.Catalog.List(ctx, client.Tier(in.Tier))
//	            return nil, CountOutput{Count: len(eps)}, err
//	        }
//	    },
//	)
//
// # Configuration
//
// Everything in internal/config can be set through the environment. The
// options override a few of those values:
//
//	server, err := mcpsrv.NewServer(
//	    c,
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/insightone-mcp.log"),
//	    mcpsrv.WithCatalogFile("catalog.yaml"),
//	)
package mcpsrv
