package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/mcp/tools"
)

// AddTool registers a custom tool the way the builtin explorer tools are
// registered: the zero value of Out must already satisfy the output schema
// the SDK infers, otherwise AddTool panics naming the offending field.
//
// The usual culprits are slice and map fields without omitempty (a nil slice
// encodes as null where the schema says array) and json.RawMessage fields
// (inferred as an array of bytes).
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
