package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

func testEndpoints() []explorer.Endpoint {
	raw := []struct {
		tier client.Tier
		ep   client.Endpoint
	}{
		{client.TierBasique, client.Endpoint{Name: "Get Quote", Path: "/v1/quote", Methods: []string{"GET"},
			Summary: "Latest quote for a symbol", Parameters: []client.Parameter{{Name: "symbol", Type: "str"}}}},
		{client.TierPro, client.Endpoint{Name: "Historical Prices", Path: "/v1/history", Methods: []string{"GET"},
			Summary: "Cours historiques de l'action", Parameters: []client.Parameter{{Name: "symbol", Type: "str"}, {Name: "start_date", Type: "str"}}}},
		{client.TierEntreprise, client.Endpoint{Name: "Bulk Export", Path: "/v1/export", Methods: []string{"POST"}}},
	}

	out := make([]explorer.Endpoint, 0, len(raw))
	for _, r := range raw {
		out = append(out, explorer.NormalizeEndpoint(r.ep, r.tier))
	}
	return out
}

func TestIndexer_Rebuild(t *testing.T) {
	idx := New()
	idx.Rebuild(testEndpoints())

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, uint64(3), idx.AllDocIDs().GetCardinality())

	pro := idx.GetBitmapForTier(client.TierPro)
	require.NotNil(t, pro)
	assert.Equal(t, []uint32{1}, pro.ToArray())

	post := idx.GetBitmapForMethod("post")
	require.NotNil(t, post)
	assert.Equal(t, []uint32{2}, post.ToArray())

	assert.Nil(t, idx.GetBitmapForMethod("DELETE"))
}

func TestIndexer_Tokens(t *testing.T) {
	idx := New()
	idx.Rebuild(testEndpoints())

	symbol := idx.GetBitmapForToken("symbol")
	require.NotNil(t, symbol)
	assert.Equal(t, []uint32{0, 1}, symbol.ToArray())

	cours := idx.GetBitmapForToken("cours")
	require.NotNil(t, cours)
	assert.Equal(t, []uint32{1}, cours.ToArray(), "summary tokens are indexed")

	prefix := idx.GetBitmapForToken("hist")
	require.NotNil(t, prefix)
	assert.Equal(t, []uint32{1}, prefix.ToArray())

	assert.Nil(t, idx.GetBitmapForToken("hi"), "short tokens need an exact match")
	assert.Nil(t, idx.GetBitmapForToken("crypto"))

	assert.True(t, idx.NameContains(0, "quote"))
	assert.False(t, idx.NameContains(1, "quote"))
}

func TestIndexer_RebuildReplaces(t *testing.T) {
	idx := New()
	idx.Rebuild(testEndpoints())
	idx.Rebuild(testEndpoints()[:1])

	assert.Equal(t, 1, idx.Len())
	assert.Nil(t, idx.GetBitmapForTier(client.TierPro))

	doc, ok := idx.GetDoc(0)
	require.True(t, ok)
	assert.Equal(t, "get_quote", doc.ID)

	_, ok = idx.GetDoc(5)
	assert.False(t, ok)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"path", "/v1/quote", []string{"v1", "quote"}},
		{"mixed case", "Get Quote", []string{"get", "quote"}},
		{"underscores", "start_date", []string{"start", "date"}},
		{"stopwords dropped", "Cours historiques de l'action", []string{"cours", "historiques", "action"}},
		{"english stopwords", "Latest quote for a symbol", []string{"latest", "quote", "symbol"}},
		{"accents kept", "Résultats", []string{"résultats"}},
		{"empty", "", []string{}},
		{"only delimiters", "/?&=.-_:", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Unique([]string{"a", "b", "a"}))
	assert.Empty(t, Unique(nil))
}
