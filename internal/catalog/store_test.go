package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

const testCatalog = `{
  "basique": [
    {"name": "Get Quote", "path": "/v1/quote", "methods": ["GET"],
     "parameters": [
       {"name": "symbol", "type": "<class 'str'>"},
       {"name": "format", "type": "typing.Literal['json','csv']", "default": "json"}
     ]}
  ],
  "pro": [
    {"name": "get  quote", "path": "/v2/quote", "methods": ["GET"]},
    {"name": "History", "path": "/v1/history", "methods": ["GET"]}
  ],
  "entreprise": [
    {"name": "Get Quote", "path": "/v3/quote", "methods": ["GET"]}
  ]
}`

type countingLoader struct {
	calls atomic.Int32
	raw   string
	err   error
	delay time.Duration
}

func (l *countingLoader) load(ctx context.Context) (*client.Catalog, []byte, error) {
	l.calls.Add(1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.err != nil {
		return nil, nil, l.err
	}
	cat, err := client.DecodeCatalog([]byte(l.raw))
	return cat, []byte(l.raw), err
}

func TestStore_LoadsOnceAndDedupesIDs(t *testing.T) {
	l := &countingLoader{raw: testCatalog}
	s := NewStore(l.load)

	all, err := s.List(context.Background(), "")
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, ep := range all {
		ids = append(ids, ep.ID)
	}
	assert.Equal(t, []string{"get_quote", "get_quote_2", "history", "get_quote_3"}, ids)

	_, err = s.Get(context.Background(), "history")
	require.NoError(t, err)
	assert.Equal(t, int32(1), l.calls.Load())

	info, ok := s.Info()
	require.True(t, ok)
	assert.Equal(t, 4, info.Endpoints)
	assert.Equal(t, 2, info.ByTier[client.TierPro])
	require.Len(t, info.Renamed, 2)
	assert.Equal(t, Rename{Name: "get  quote", From: "get_quote", To: "get_quote_2"}, info.Renamed[0])
	assert.Empty(t, info.Warnings)
}

func TestStore_GetResetsValues(t *testing.T) {
	s := NewStore((&countingLoader{raw: testCatalog}).load)
	ctx := context.Background()

	ep, err := s.Get(ctx, "get_quote")
	require.NoError(t, err)
	assert.Equal(t, client.TierBasique, ep.Category)
	ep.SetValues(map[string]string{"symbol": "AAPL", "format": "csv"})

	again, err := s.Get(ctx, "get_quote")
	require.NoError(t, err)
	p, _ := again.Param("symbol")
	assert.Equal(t, "", p.Value)
	p, _ = again.Param("format")
	assert.Equal(t, "json", p.Value)
}

func TestStore_GetNotFound(t *testing.T) {
	s := NewStore((&countingLoader{raw: testCatalog}).load)

	_, err := s.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_ListByTier(t *testing.T) {
	s := NewStore((&countingLoader{raw: testCatalog}).load)

	pro, err := s.List(context.Background(), client.TierPro)
	require.NoError(t, err)
	require.Len(t, pro, 2)
	assert.Equal(t, "/v2/quote", pro[0].Path)
}

func TestStore_ConcurrentLoadsShareOneFetch(t *testing.T) {
	l := &countingLoader{raw: testCatalog, delay: 50 * time.Millisecond}
	s := NewStore(l.load)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Get(context.Background(), "history")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), l.calls.Load())
}

func TestStore_LoadError(t *testing.T) {
	l := &countingLoader{err: errors.New("connection refused")}
	s := NewStore(l.load)

	_, err := s.List(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	_, ok := s.Info()
	assert.False(t, ok)
}

func TestStore_StaleReloadFailureKeepsCatalog(t *testing.T) {
	l := &countingLoader{raw: testCatalog}
	s := NewStore(l.load, WithTTL(time.Nanosecond))
	ctx := context.Background()

	require.NoError(t, s.Ensure(ctx))
	l.err = errors.New("down")
	time.Sleep(time.Millisecond)

	ep, err := s.Get(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, "History", ep.Name)
	assert.Equal(t, int32(2), l.calls.Load())
}

func TestStore_RefreshNotifiesOnLoad(t *testing.T) {
	var got []explorer.Endpoint
	s := NewStore((&countingLoader{raw: testCatalog}).load, OnLoad(func(eps []explorer.Endpoint) {
		got = eps
	}))

	info, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, info.Endpoints)
	assert.Len(t, got, 4)
}

func TestStore_SchemaWarnings(t *testing.T) {
	raw := `{"basique":[{"name":"Broken","path":"no-slash","parameters":[{"name":"a","type":"str"}]}]}`
	s := NewStore((&countingLoader{raw: raw}).load)

	info, err := s.Refresh(context.Background())
	require.NoError(t, err, "schema violations never block loading")
	assert.NotEmpty(t, info.Warnings)

	ep, err := s.Get(context.Background(), "broken")
	require.NoError(t, err)
	assert.Equal(t, "no-slash", ep.Path)
}

func TestFromFile(t *testing.T) {
	path := t.TempDir() + "/catalog.json"
	var doc any
	require.NoError(t, json.Unmarshal([]byte(testCatalog), &doc))
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s := NewStore(FromFile(path))
	all, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
