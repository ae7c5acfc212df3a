// Package schema validates JSON documents against JSON Schemas, including
// the catalog payload served by the InsightOne catalog route.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

// Result is the outcome of a validation.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator validates JSON data against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a JSON Schema document.
func NewValidator(schemaJSON []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON Schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	// doc must be a decoded JSON value, not an io.Reader
	if err := compiler.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate validates JSON bytes against the schema.
func (v *Validator) Validate(data []byte) *Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &Result{Errors: []string{fmt.Sprintf("invalid JSON: %s", err.Error())}}
	}
	return v.ValidateValue(value)
}

// ValidateValue validates an already-decoded value against the schema.
func (v *Validator) ValidateValue(value any) *Result {
	if err := v.schema.Validate(value); err != nil {
		return &Result{Errors: extractValidationErrors(err)}
	}
	return &Result{Valid: true}
}

var (
	catalogOnce      sync.Once
	catalogValidator *Validator
	catalogErr       error
)

// CatalogSchema returns the embedded schema of the catalog payload.
func CatalogSchema() []byte {
	return catalogSchemaJSON
}

// ValidateCatalog validates a raw catalog payload.
func ValidateCatalog(raw []byte) (*Result, error) {
	catalogOnce.Do(func() {
		catalogValidator, catalogErr = NewValidator(catalogSchemaJSON)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	return catalogValidator.Validate(raw), nil
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	seen := make(map[string]bool)
	var result []string
	collectErrors(validationErr, func(path, msg string) {
		line := msg
		if path != "" {
			line = path + ": " + msg
		}
		if !seen[line] {
			seen[line] = true
			result = append(result, line)
		}
	})
	sort.Strings(result)
	return result
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// collectErrors reports leaf errors, those with an error kind and no causes.
func collectErrors(err *jsonschema.ValidationError, report func(path, msg string)) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			path := ""
			if len(err.InstanceLocation) > 0 {
				path = "/" + strings.Join(err.InstanceLocation, "/")
			}
			report(path, msg)
		}
	}
	for _, cause := range err.Causes {
		collectErrors(cause, report)
	}
}
