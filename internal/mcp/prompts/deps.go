// Package prompts contains MCP prompt implementations for the InsightOne API explorer.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	APIBaseURL     string
	OfflineCatalog bool // catalog loaded from a snapshot file
}
