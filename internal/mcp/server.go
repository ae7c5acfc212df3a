package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/mcp/prompts"
	"github.com/insightone/insightone-mcp/internal/mcp/tools"
)

// Version is reported in the MCP implementation info.
const Version = "0.3.0"

// instructions is sent to clients on initialize.
const instructions = `InsightOne API explorer. Find an endpoint with insightone_search_endpoints or insightone_list_endpoints, ` +
	`read its form with insightone_describe_endpoint, store the user's token with insightone_set_token, ` +
	`then call it with insightone_execute. Results stay available by result_id for jq queries and validation.`

// Server is the explorer MCP server: tools, insightone:// resources and
// prompts on top of one set of tools.Deps.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps

	tools   bool
	prompts bool
	extra   []func(*sdkmcp.Server)
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithBuiltinTools registers the insightone_* tools and the resources.
func WithBuiltinTools() ServerOption {
	return func(s *Server) { s.tools = true }
}

// WithBuiltinPrompts registers try_endpoint and explorer_guide.
func WithBuiltinPrompts() ServerOption {
	return func(s *Server) { s.prompts = true }
}

// WithCustomRegistration runs fn against the SDK server after the builtins
// are registered.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(s *Server) { s.extra = append(s.extra, fn) }
}

// NewServer builds the SDK server and registers what opts enable.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if deps == nil {
		return nil, errors.New("deps is required")
	}

	s := &Server{deps: deps}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "insightone-mcp", Version: Version},
		&sdkmcp.ServerOptions{Instructions: instructions},
	)
	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	if s.tools {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if s.prompts {
		prompts.Register(s.mcpServer, &prompts.Config{
			APIBaseURL:     deps.Config.APIBaseURL,
			OfflineCatalog: deps.Config.CatalogFile != "",
		})
	}
	for _, fn := range s.extra {
		fn(s.mcpServer)
	}

	return s, nil
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
