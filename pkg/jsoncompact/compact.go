// Package jsoncompact shrinks decoded JSON payloads for display by trimming
// long arrays and strings.
package jsoncompact

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Options controls JSON compaction behavior.
type Options struct {
	MaxArrayItems int // Keep the first N array items (0 = no limit)
	MaxStringLen  int // Keep the first N characters of strings (0 = no limit)
	MaxDepth      int // Replace values nested deeper than N (0 = unlimited)
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 500
	DefaultMaxDepth      = 0
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() Options {
	return Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Result is a compacted value plus what was cut from it.
type Result struct {
	Value            any `json:"value"`
	TrimmedArrays    int `json:"trimmed_arrays,omitempty"`
	OmittedItems     int `json:"omitted_items,omitempty"`
	TruncatedStrings int `json:"truncated_strings,omitempty"`
}

// Changed reports whether anything was trimmed.
func (r Result) Changed() bool {
	return r.TrimmedArrays > 0 || r.TruncatedStrings > 0
}

// Compact returns a trimmed copy of v, a value produced by json.Unmarshal.
// Trimmed arrays end with a "... (N more items)" marker; truncated strings
// with "... (N more chars)". v is not modified.
func Compact(v any, opts Options) Result {
	c := compactor{opts: opts}
	out := c.walk(v, 0)
	return Result{
		Value:            out,
		TrimmedArrays:    c.trimmedArrays,
		OmittedItems:     c.omittedItems,
		TruncatedStrings: c.truncatedStrings,
	}
}

// CompactJSON decodes data, compacts it and re-encodes it.
func CompactJSON(data []byte, opts Options) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return json.Marshal(Compact(v, opts).Value)
}

type compactor struct {
	opts             Options
	trimmedArrays    int
	omittedItems     int
	truncatedStrings int
}

func (c *compactor) walk(v any, depth int) any {
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		switch v.(type) {
		case []any, map[string]any:
			return "[max depth]"
		}
	}

	switch val := v.(type) {
	case []any:
		return c.array(val, depth)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = c.walk(item, depth+1)
		}
		return out
	case string:
		return c.string(val)
	}
	return v
}

func (c *compactor) array(arr []any, depth int) []any {
	keep := len(arr)
	if c.opts.MaxArrayItems > 0 && keep > c.opts.MaxArrayItems {
		keep = c.opts.MaxArrayItems
	}

	out := make([]any, 0, keep+1)
	for _, item := range arr[:keep] {
		out = append(out, c.walk(item, depth+1))
	}
	if omitted := len(arr) - keep; omitted > 0 {
		c.trimmedArrays++
		c.omittedItems += omitted
		out = append(out, fmt.Sprintf("... (%d more items)", omitted))
	}
	return out
}

func (c *compactor) string(s string) string {
	if c.opts.MaxStringLen <= 0 {
		return s
	}
	n := utf8.RuneCountInString(s)
	if n <= c.opts.MaxStringLen {
		return s
	}
	c.truncatedStrings++
	return string([]rune(s)[:c.opts.MaxStringLen]) + fmt.Sprintf("... (%d more chars)", n-c.opts.MaxStringLen)
}
