package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its output type with
// CheckOutputSchema. It panics when the check fails.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T would fail the output
// schema the SDK infers for T, or when T contains a json.RawMessage.
//
// A nil slice marshals as null while the inferred schema says "array", so
// slice fields need omitzero/omitempty or an empty initial value. A
// json.RawMessage is inferred as an array of bytes but marshals as arbitrary
// JSON; use any and types.ToAny instead.
//
// The untyped any output is not checked. Inference failures are left to the
// SDK, which reports them itself.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := findRawMessageFields(rt, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has json.RawMessage at %s\n"+
				"  the schema generator sees []byte (array of ints) but the value marshals as raw JSON\n"+
				"  Fix: declare the field as any and fill it with types.ToAny(value)",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	if err := validateZero(rt); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  Fix: add `omitzero` to slice fields that default to nil, or initialize them to empty slices",
			toolName, rt, err,
		))
	}
}

// validateZero marshals the zero value of rt and validates it against the
// inferred schema. Only validation failures are reported.
func validateZero(rt reflect.Type) error {
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}

	if err := resolved.Validate(&v); err != nil {
		return fmt.Errorf("%w (JSON: %s)", err, data)
	}
	return nil
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// findRawMessageFields returns the paths of json.RawMessage values reachable
// from t through struct fields, slices, arrays and map values.
func findRawMessageFields(t reflect.Type, path []string, visited map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}

	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fieldPath := append(append([]string(nil), path...), f.Name)
			found = append(found, findRawMessageFields(f.Type, fieldPath, visited)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, findRawMessageFields(t.Elem(), append(path, "[]"), visited)...)
	case reflect.Map:
		found = append(found, findRawMessageFields(t.Elem(), append(path, "[value]"), visited)...)
	}
	return found
}
