package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/insightone/insightone-mcp/internal/mcp/tools"
	"github.com/insightone/insightone-mcp/internal/openapi"
	"github.com/insightone/insightone-mcp/pkg/client"
)

// Resource URI scheme: insightone://
// Supported URIs:
//   insightone://result/{id}
//   insightone://catalog/{tier}   (tier may be "all")
//   insightone://openapi

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ResourceScheme + "result/{id}",
		Name:        "Execution Result",
		Description: "Full payload of a cached execution result. CSV results are served as text/csv. High context cost - insightone_execute already returns a compacted view.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceResult)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ResourceScheme + "catalog/{tier}",
		Name:        "Endpoint Catalog",
		Description: "Normalized endpoint forms of one tier (basique, pro, entreprise) or of every tier (all).",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceCatalog)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         tools.OpenAPIURI,
		Name:        "OpenAPI Document",
		Description: "The endpoint catalog as an OpenAPI 3 document with bearer security.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"user", "assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceOpenAPI)
}

func (s *Server) handleResourceResult(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	res, ok := s.deps.Results.Get(params["id"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	if text, ok := res.CSV(); ok {
		return textResult(req.Params.URI, tools.MimeCSV, text), nil
	}
	return toResourceResult(req.Params.URI, res)
}

func (s *Server) handleResourceCatalog(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	var tier client.Tier
	if name := params["tier"]; name != "all" {
		t, ok := client.ParseTier(name)
		if !ok {
			return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
		}
		tier = t
	}

	endpoints, err := s.deps.Catalog.List(ctx, tier)
	if err != nil {
		return nil, tools.WrapCatalogError(err)
	}

	content := map[string]any{
		"tier":      params["tier"],
		"count":     len(endpoints),
		"endpoints": endpoints,
	}
	return toResourceResult(req.Params.URI, content)
}

func (s *Server) handleResourceOpenAPI(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	endpoints, err := s.deps.Catalog.List(ctx, "")
	if err != nil {
		return nil, tools.WrapCatalogError(err)
	}

	doc := openapi.Build(s.deps.Executor.BaseURL(), endpoints)
	data, err := openapi.Marshal(doc, "json")
	if err != nil {
		return nil, err
	}
	return textResult(req.Params.URI, tools.MimeJSON, string(data)), nil
}

// parseResourceURI extracts parameters from an insightone:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, tools.ResourceScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + tools.ResourceScheme)
	}

	path := strings.TrimPrefix(uri, tools.ResourceScheme)
	parts := strings.Split(path, "/")
	params := make(map[string]string)

	switch resourceType := parts[0]; resourceType {
	case "result":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("result URI requires a result ID")
		}
		params["id"] = parts[1]

	case "catalog":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("catalog URI requires a tier or \"all\"")
		}
		params["tier"] = parts[1]

	case "openapi":

	case "":
		return nil, tools.ErrInvalidInput("empty resource path")

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}
	return textResult(uri, tools.MimeJSON, string(data)), nil
}

func textResult(uri, mime, text string) *sdkmcp.ReadResourceResult {
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: mime,
				Text:     text,
			},
		},
	}
}
