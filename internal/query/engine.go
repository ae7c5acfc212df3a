// Package query applies jq expressions to JSON execution payloads.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// DefaultMaxResults caps the values returned by a single query.
const DefaultMaxResults = 500

// Engine executes jq queries against JSON data.
type Engine struct {
	maxResults int
}

// NewEngine creates a new query engine. maxResults <= 0 uses DefaultMaxResults.
func NewEngine(maxResults int) *Engine {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Engine{maxResults: maxResults}
}

// Result contains the values produced by a jq query.
type Result struct {
	Values    []any    `json:"values"`
	Errors    []string `json:"errors,omitempty"` // runtime errors, with hints
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
}

// Query runs expression against a JSON document.
func (e *Engine) Query(data []byte, expression string) (*Result, error) {
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return e.QueryValue(input, expression)
}

// QueryValue runs expression against an already decoded JSON value.
// The value must use the encoding/json representation (map[string]any,
// []any, float64, string, bool, nil).
func (e *Engine) QueryValue(input any, expression string) (*Result, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	result := &Result{Values: make([]any, 0)}
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		if len(result.Values) >= e.maxResults {
			result.Truncated = true
			break
		}
		result.Values = append(result.Values, v)
	}
	result.Count = len(result.Values)
	return result, nil
}

// ValidateExpression checks that a jq expression parses and compiles.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// formatJQError adds a hint to common runtime errors. gojq reports these as
// plain errors, so the hints are chosen from the message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	msg := err.Error()
	var hint string
	switch {
	case strings.Contains(msg, "cannot iterate over: null"):
		hint = " (the path may not exist in this response)"
	case strings.Contains(msg, "cannot index") && strings.Contains(msg, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(msg, "object") && strings.Contains(msg, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(msg, "array") && strings.Contains(msg, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}
	return msg + hint
}
