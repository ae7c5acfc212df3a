package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Query(t *testing.T) {
	engine := NewEngine(0)

	tests := []struct {
		name string
		data string
		expr string
		want []any
	}{
		{"field", `{"symbol":"AAPL","price":189.5}`, ".price", []any{189.5}},
		{"iterate", `{"bars":[{"c":1},{"c":2}]}`, ".bars[].c", []any{float64(1), float64(2)}},
		{"null kept", `{"a":null}`, ".a", []any{nil}},
		{"select", `[{"s":"A","v":1},{"s":"B","v":2}]`, `.[] | select(.v > 1) | .s`, []any{"B"}},
		{"construct", `{"a":1,"b":2}`, `{a}`, []any{map[string]any{"a": float64(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Query([]byte(tt.data), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Values)
			assert.Equal(t, len(tt.want), result.Count)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestEngine_QueryValue(t *testing.T) {
	result, err := NewEngine(0).QueryValue([]any{"a", "b"}, "length")
	require.NoError(t, err)
	assert.Equal(t, []any{2}, result.Values)
}

func TestEngine_MaxResults(t *testing.T) {
	result, err := NewEngine(2).Query([]byte(`[1,2,3,4]`), ".[]")
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, result.Values)
	assert.True(t, result.Truncated)
}

func TestEngine_RuntimeErrorHints(t *testing.T) {
	engine := NewEngine(0)

	result, err := engine.Query([]byte(`{"items":null}`), ".items[]")
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "the path may not exist")

	result, err = engine.Query([]byte(`[1,2]`), ".name")
	require.NoError(t, err)
	assert.Len(t, result.Errors, 1)
	assert.Empty(t, result.Values)
}

func TestEngine_InvalidInput(t *testing.T) {
	engine := NewEngine(0)

	_, err := engine.Query([]byte(`not json`), ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON data")

	_, err = engine.Query([]byte(`{}`), ".[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEngine_ValidateExpression(t *testing.T) {
	engine := NewEngine(0)

	assert.NoError(t, engine.ValidateExpression(".data[] | .close"))
	assert.Error(t, engine.ValidateExpression(".data[] |"))
	assert.Error(t, engine.ValidateExpression("undefined_func(1)"))
}
