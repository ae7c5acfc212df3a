// Package types provides shared types for insightone-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

import (
	"encoding/json"

	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EndpointSummary is a compact endpoint representation for listings.
type EndpointSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Tier       string `json:"tier"`
	Summary    string `json:"summary,omitempty"`
	Parameters int    `json:"parameters"`
}

// Summarize returns the listing form of ep.
func Summarize(ep *explorer.Endpoint) EndpointSummary {
	return EndpointSummary{
		ID:         ep.ID,
		Name:       ep.Name,
		Method:     ep.Method,
		Path:       ep.Path,
		Tier:       string(ep.Category),
		Summary:    ep.Summary,
		Parameters: len(ep.Parameters),
	}
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}
