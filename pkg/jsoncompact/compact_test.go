package jsoncompact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_TrimsArrays(t *testing.T) {
	prices := []any{1.0, 2.0, 3.0, 4.0, 5.0}
	in := map[string]any{"symbol": "AAPL", "prices": prices}

	res := Compact(in, DefaultOptions())
	out := res.Value.(map[string]any)

	assert.Equal(t, []any{1.0, 2.0, 3.0, "... (2 more items)"}, out["prices"])
	assert.Equal(t, "AAPL", out["symbol"])
	assert.Equal(t, 1, res.TrimmedArrays)
	assert.Equal(t, 2, res.OmittedItems)
	assert.True(t, res.Changed())
	assert.Len(t, prices, 5, "input must not be modified")
}

func TestCompact_TruncatesStringsByCharacter(t *testing.T) {
	res := Compact("éééé", Options{MaxStringLen: 2})
	assert.Equal(t, "éé... (2 more chars)", res.Value)
	assert.Equal(t, 1, res.TruncatedStrings)
}

func TestCompact_NoLimits(t *testing.T) {
	in := []any{"a", "b", "c", "d", strings.Repeat("x", 1000)}
	res := Compact(in, Options{})
	assert.Equal(t, in, res.Value)
	assert.False(t, res.Changed())
}

func TestCompact_MaxDepth(t *testing.T) {
	in := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1.0}}, "n": 1.0}
	res := Compact(in, Options{MaxDepth: 2})

	out := res.Value.(map[string]any)
	assert.Equal(t, 1.0, out["n"])
	assert.Equal(t, map[string]any{"b": "[max depth]"}, out["a"])
}

func TestCompactJSON(t *testing.T) {
	out, err := CompactJSON([]byte(`{"rows":[[1,2],[3,4],[5,6],[7,8]]}`), Options{MaxArrayItems: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":[[1,2],[3,4],"... (2 more items)"]}`, string(out))

	_, err = CompactJSON([]byte(`{`), DefaultOptions())
	require.Error(t, err)

	out, err = CompactJSON(nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, out)
}
