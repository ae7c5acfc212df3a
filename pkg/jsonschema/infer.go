// Package jsonschema infers a JSON Schema (Draft 2020-12) describing a
// decoded API payload.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/invopop/jsonschema"
)

// Inferred is a schema inferred from one payload.
type Inferred struct {
	Schema *jsonschema.Schema `json:"schema"`
	// Records is the number of top-level array items, or 1 for a non-array payload.
	Records int `json:"records"`
}

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?$`)
)

// Infer describes v, a value produced by json.Unmarshal.
//
// Object properties are required when present and non-null in every object
// seen at that position; for arrays of records this means every record.
// Strings that all look like dates or timestamps get a "date" or
// "date-time" format.
func Infer(v any) *Inferred {
	records := 1
	if arr, ok := v.([]any); ok {
		records = len(arr)
	}
	return &Inferred{Schema: infer([]any{v}), Records: records}
}

// InferJSON decodes data and infers its schema.
func InferJSON(data []byte) (*Inferred, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return Infer(v), nil
}

// infer builds one schema covering every sample.
func infer(samples []any) *jsonschema.Schema {
	byType := make(map[string][]any)
	for _, s := range samples {
		t := typeOf(s)
		byType[t] = append(byType[t], s)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	variants := make([]*jsonschema.Schema, 0, len(types))
	for _, t := range types {
		variants = append(variants, inferType(t, byType[t]))
	}

	switch len(variants) {
	case 0:
		return &jsonschema.Schema{}
	case 1:
		return variants[0]
	}
	// integer and number together are just number.
	if len(types) == 2 && types[0] == "integer" && types[1] == "number" {
		return variants[1]
	}
	return &jsonschema.Schema{AnyOf: variants}
}

func inferType(t string, samples []any) *jsonschema.Schema {
	switch t {
	case "object":
		return inferObject(samples)
	case "array":
		var items []any
		for _, s := range samples {
			items = append(items, s.([]any)...)
		}
		schema := &jsonschema.Schema{Type: "array"}
		if len(items) > 0 {
			schema.Items = infer(items)
		}
		return schema
	case "string":
		return &jsonschema.Schema{Type: "string", Format: stringFormat(samples)}
	case "":
		return &jsonschema.Schema{}
	}
	return &jsonschema.Schema{Type: t}
}

func inferObject(samples []any) *jsonschema.Schema {
	values := make(map[string][]any)
	present := make(map[string]int)
	for _, s := range samples {
		for k, v := range s.(map[string]any) {
			values[k] = append(values[k], v)
			if v != nil {
				present[k]++
			}
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	schema := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
	for _, k := range keys {
		schema.Properties.Set(k, infer(values[k]))
		if present[k] == len(samples) {
			schema.Required = append(schema.Required, k)
		}
	}
	return schema
}

func typeOf(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		if math.Trunc(val) == val && !math.IsInf(val, 0) {
			return "integer"
		}
		return "number"
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return "integer"
		}
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return ""
}

func stringFormat(samples []any) string {
	format := ""
	for _, s := range samples {
		str := s.(string)
		var f string
		switch {
		case datePattern.MatchString(str):
			f = "date"
		case dateTimePattern.MatchString(str):
			f = "date-time"
		default:
			return ""
		}
		if format != "" && format != f {
			return ""
		}
		format = f
	}
	return format
}
