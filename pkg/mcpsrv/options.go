package mcpsrv

import (
	"context"
	"net/http"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/config"
)

// serverConfig collects what the options set before NewServer builds Deps.
type serverConfig struct {
	config     *config.Config
	httpClient *http.Client

	logLevel    string
	logFile     string
	catalogFile string

	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Registrations run after the builtins, in option order.
	registrations []func(*mcp.Server)
	// Registrations that need the server's Deps.
	depsRegistrations []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config = c
	}
}

// WithLogLevel overrides LOG_LEVEL (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile overrides LOG_FILE. Logs never go to stdout, which carries
// the MCP stream.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithHTTPClient sets the HTTP client used to execute endpoint calls.
// The catalog is still fetched with the client passed to NewServer.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *serverConfig) {
		cfg.httpClient = c
	}
}

// WithCatalogFile loads the catalog from a JSON or YAML snapshot instead of
// the catalog route.
func WithCatalogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.catalogFile = path
	}
}

// WithoutBuiltinTools leaves out the insightone_* tools and the
// insightone:// resources.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts leaves out try_endpoint and explorer_guide.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a tool whose handler needs nothing from the server:
//
//	type TickerInput struct {
//	    Symbol string `json:"symbol"`
//	}
//
//	type TickerOutput struct {
//	    Normalized string `json:"normalized"`
//	}
//
//	mcpsrv.WithTool(
//	    &mcp.Tool{Name: "normalize_ticker", Description: "Upper-case and trim a ticker"},
//	    func(ctx context.Context, req *mcp.CallToolRequest, in TickerInput) (*mcp.CallToolResult, TickerOutput, error) {
//	        return nil, TickerOutput{Normalized: strings.ToUpper(strings.TrimSpace(in.Symbol))}, nil
//	    },
//	)
//
// The output type goes through the same check as AddTool.
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a tool built from the server's Deps, for handlers
// that read the catalog, call endpoints or look at cached results. The
// builder runs once, when the server is created.
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "count_matches", Description: "Count endpoints matching a query"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            resp, err := d.Search.Search(ctx, &types.SearchRequest{Query: in.Query})
//	            if err != nil {
//	                return nil, CountOutput{}, err
//	            }
//	            return nil, CountOutput{Count: resp.Total}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.depsRegistrations = append(cfg.depsRegistrations, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a prompt next to the builtin ones.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a resource template. Templates under the
// insightone:// scheme are reserved for the builtins.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.registrations = append(cfg.registrations, func(srv *mcp.Server) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
