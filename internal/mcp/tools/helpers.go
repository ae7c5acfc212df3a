// Package tools contains MCP tool implementations for the InsightOne API explorer.
package tools

import (
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/types"
)

// MIME type constants.
const (
	MimeJSON = "application/json"
	MimeCSV  = "text/csv"
	MimeYAML = "application/yaml"
)

// Resource URIs.
const (
	ResourceScheme = "insightone://"
	OpenAPIURI     = ResourceScheme + "openapi"
)

// ResultURI returns the resource URI of a cached result.
func ResultURI(id string) string {
	return ResourceScheme + "result/" + id
}

// CatalogURI returns the resource URI of a tier listing. An empty tier
// lists every endpoint.
func CatalogURI(tier client.Tier) string {
	if tier == "" {
		return ResourceScheme + "catalog/all"
	}
	return ResourceScheme + "catalog/" + string(tier)
}

func resultRef(id, mime string) types.ResourceRef {
	return types.ResourceRef{
		URI:  ResultURI(id),
		MIME: mime,
		Hint: "Full response body without compaction",
	}
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
