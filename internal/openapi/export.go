// Package openapi exports the normalized catalog as an OpenAPI 3 document.
package openapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// SecuritySchemeName is the name of the bearer scheme in components.
const SecuritySchemeName = "bearerAuth"

// Version is written to info.version.
const Version = "1.0.0"

var tierDescriptions = map[client.Tier]string{
	client.TierBasique:    "Endpoints of the basique subscription",
	client.TierPro:        "Endpoints of the pro subscription",
	client.TierEntreprise: "Endpoints of the entreprise subscription",
}

// Build converts endpoints into an OpenAPI document. Servers point at the
// /api prefix the executor prepends. When two endpoints share a path and a
// method, the first one wins and the other is logged and skipped.
func Build(baseURL string, endpoints []explorer.Endpoint) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "InsightOne API",
			Description: "Financial data endpoints grouped by subscription tier.",
			Version:     Version,
		},
		Servers: openapi3.Servers{
			{URL: strings.TrimRight(baseURL, "/") + explorer.APIPrefix},
		},
		Paths: openapi3.NewPaths(),
	}

	components := openapi3.NewComponents()
	components.SecuritySchemes = openapi3.SecuritySchemes{
		SecuritySchemeName: &openapi3.SecuritySchemeRef{
			Value: openapi3.NewSecurityScheme().WithType("http").WithScheme("bearer"),
		},
	}
	doc.Components = &components
	doc.Security = *openapi3.NewSecurityRequirements().
		With(openapi3.NewSecurityRequirement().Authenticate(SecuritySchemeName))

	usedTiers := make(map[client.Tier]bool)
	for i := range endpoints {
		ep := &endpoints[i]

		item := doc.Paths.Value(ep.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(ep.Path, item)
		}
		if item.GetOperation(ep.Method) != nil {
			slog.Warn("openapi export skipped endpoint with duplicate path and method",
				slog.String("id", ep.ID),
				slog.String("method", ep.Method),
				slog.String("path", ep.Path),
			)
			continue
		}

		item.SetOperation(ep.Method, operation(ep))
		usedTiers[ep.Category] = true
	}

	for _, t := range client.Tiers {
		if usedTiers[t] {
			doc.Tags = append(doc.Tags, &openapi3.Tag{Name: string(t), Description: tierDescriptions[t]})
		}
	}
	return doc
}

func operation(ep *explorer.Endpoint) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = ep.ID
	op.Summary = ep.Name
	op.Description = ep.Summary
	op.Tags = []string{string(ep.Category)}

	for i := range ep.Parameters {
		op.AddParameter(parameter(&ep.Parameters[i]))
	}

	content := openapi3.NewContentWithJSONSchema(openapi3.NewSchema())
	if supportsCSV(ep) {
		content["text/csv"] = openapi3.NewMediaType().WithSchema(openapi3.NewStringSchema())
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Successful response").WithContent(content),
		}),
		openapi3.WithName("default", openapi3.NewResponse().WithDescription("Error response")),
	)
	return op
}

func parameter(p *explorer.Parameter) *openapi3.Parameter {
	param := openapi3.NewQueryParameter(p.Name).WithRequired(p.Required)
	if p.DisplayType != "" {
		param.Description = "Type: " + p.DisplayType
	}

	var schema *openapi3.Schema
	if p.Kind == explorer.KindEnum {
		values := make([]any, len(p.Options))
		for i, o := range p.Options {
			values[i] = o
		}
		schema = openapi3.NewStringSchema().WithEnum(values...)
	} else {
		schema = schemaFor(p.DisplayType)
	}

	if !p.Required && p.Default != "" {
		if v, ok := typedDefault(schema, p.Default); ok {
			schema.Default = v
		}
	}
	return param.WithSchema(schema)
}

// schemaFor maps the declared type of a text parameter to a JSON type.
func schemaFor(displayType string) *openapi3.Schema {
	switch displayType {
	case "int":
		return openapi3.NewIntegerSchema()
	case "float":
		return openapi3.NewFloat64Schema()
	case "bool":
		return openapi3.NewBoolSchema()
	case "datetime.date", "date":
		return openapi3.NewStringSchema().WithFormat("date")
	case "datetime.datetime", "datetime":
		return openapi3.NewDateTimeSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

// typedDefault converts the textual default to the schema's type. Defaults
// that do not fit the schema are dropped.
func typedDefault(schema *openapi3.Schema, text string) (any, bool) {
	switch {
	case schema.Type.Is(openapi3.TypeInteger):
		n, err := strconv.ParseInt(text, 10, 64)
		return n, err == nil
	case schema.Type.Is(openapi3.TypeNumber):
		f, err := strconv.ParseFloat(text, 64)
		return f, err == nil
	case schema.Type.Is(openapi3.TypeBoolean):
		switch strings.ToLower(text) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	}
	if len(schema.Enum) > 0 {
		for _, v := range schema.Enum {
			if v == text {
				return text, true
			}
		}
		return nil, false
	}
	return text, true
}

func supportsCSV(ep *explorer.Endpoint) bool {
	p, ok := ep.Param("format")
	if !ok {
		return false
	}
	if p.Kind != explorer.KindEnum {
		return true
	}
	for _, o := range p.Options {
		if o == "csv" {
			return true
		}
	}
	return false
}

// Marshal encodes doc as "json" (indented) or "yaml".
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding openapi document: %w", err)
	}

	switch format {
	case "", "json":
		return data, nil
	case "yaml", "yml":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding openapi document: %w", err)
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding openapi yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}
