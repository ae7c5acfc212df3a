package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightone/insightone-mcp/pkg/explorer"
)

func TestResultCache_PutGet(t *testing.T) {
	c, err := NewResultCache(4)
	require.NoError(t, err)

	res := &explorer.ExecutionResult{EndpointID: "get_quote", Status: 200}
	id := c.Put(res)

	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Same(t, res, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestResultCache_Eviction(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	first := c.Put(&explorer.ExecutionResult{EndpointID: "a"})
	c.Put(&explorer.ExecutionResult{EndpointID: "b"})
	c.Put(&explorer.ExecutionResult{EndpointID: "c"})

	_, ok := c.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestResultCache_Recent(t *testing.T) {
	c, err := NewResultCache(8)
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		c.Put(&explorer.ExecutionResult{EndpointID: id})
	}

	recent := c.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].EndpointID)
	assert.Equal(t, "b", recent[1].EndpointID)

	assert.Len(t, c.Recent(0), 3)
}

func TestNewResultCache_InvalidSize(t *testing.T) {
	_, err := NewResultCache(0)
	require.Error(t, err)
}
