package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightone/insightone-mcp/internal/cache"
	"github.com/insightone/insightone-mcp/internal/catalog"
	"github.com/insightone/insightone-mcp/internal/config"
	"github.com/insightone/insightone-mcp/internal/indexer"
	"github.com/insightone/insightone-mcp/internal/query"
	"github.com/insightone/insightone-mcp/internal/search"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
	"github.com/insightone/insightone-mcp/pkg/shape"
)

const toolsCatalog = `{
  "basique": [
    {"name": "Get Quote", "path": "/v1/quote", "methods": ["GET"], "summary": "Latest quote",
     "parameters": [{"name": "symbol", "type": "<class 'str'>"}]}
  ],
  "pro": [
    {"name": "History", "path": "/v1/history", "methods": ["GET"],
     "parameters": [
       {"name": "symbol", "type": "<class 'str'>"},
       {"name": "format", "type": "typing.Literal['json','csv']", "default": "json"}
     ]}
  ],
  "entreprise": []
}`

type apiStub struct {
	requests atomic.Int32
	status   int
	ctype    string
	body     string
	lastURI  atomic.Value
}

func newTestDeps(t *testing.T, stub *apiStub) *Deps {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.requests.Add(1)
		stub.lastURI.Store(r.URL.RequestURI())
		w.Header().Set("Content-Type", stub.ctype)
		w.WriteHeader(stub.status)
		_, _ = w.Write([]byte(stub.body))
	}))
	t.Cleanup(srv.Close)

	cfg := config.Load()
	cfg.CompactMaxArrayItems = 2
	cfg.CompactMaxStringLen = 100
	cfg.CompactMaxDepth = 0

	idx := indexer.New()
	store := catalog.NewStore(func(ctx context.Context) (*client.Catalog, []byte, error) {
		cat, err := client.DecodeCatalog([]byte(toolsCatalog))
		return cat, []byte(toolsCatalog), err
	}, catalog.OnLoad(idx.Rebuild))

	results, err := cache.NewResultCache(8)
	require.NoError(t, err)

	return &Deps{
		Config:   cfg,
		Catalog:  store,
		Indexer:  idx,
		Search:   search.New(idx, store, cfg.DefaultSearchLimit, cfg.MaxSearchLimit),
		Executor: explorer.NewExecutor(srv.URL),
		Tokens:   explorer.NewTokenStore(),
		Results:  results,
		Query:    query.NewEngine(0),
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var coded *CodedError
	require.True(t, errors.As(err, &coded), "expected CodedError, got %v", err)
	assert.Equal(t, code, coded.Code)
}

func TestExecute_MissingTokenDoesNoIO(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "application/json", body: `{}`}
	d := newTestDeps(t, stub)

	_, _, err := ToolExecute(d)(context.Background(), nil, ExecuteInput{EndpointID: "get_quote"})
	requireCode(t, err, ErrCodeMissingToken)
	assert.Equal(t, int32(0), stub.requests.Load())
	assert.Equal(t, 0, d.Results.Len())
}

func TestExecute_JSONCompactAndCache(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "application/json", body: `{"symbol":"AAPL","bars":[1,2,3,4,5]}`}
	d := newTestDeps(t, stub)
	ctx := context.Background()

	_, _, err := ToolSetToken(d)(ctx, nil, SetTokenInput{EndpointID: "get_quote", Token: "tok"})
	require.NoError(t, err)

	_, out, err := ToolExecute(d)(ctx, nil, ExecuteInput{
		EndpointID: "get_quote",
		Params:     map[string]string{"symbol": "AAPL", "bogus": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/quote?symbol=AAPL", stub.lastURI.Load())
	assert.Equal(t, []string{"bogus"}, out.IgnoredParams)
	assert.Empty(t, out.MissingRequired)

	view := out.Result
	require.NotNil(t, view)
	assert.Equal(t, 200, view.Status)
	assert.Equal(t, "json", view.ContentKind)
	require.NotNil(t, view.Compaction)
	assert.Equal(t, 3, view.Compaction.OmittedItems)
	assert.Equal(t, ResultURI(view.ResultID), view.Resource.URI)

	cached, ok := d.Results.Get(view.ResultID)
	require.True(t, ok)
	assert.Equal(t, "get_quote", cached.EndpointID)

	_, q, err := ToolQueryResult(d)(ctx, nil, QueryResultInput{ResultID: view.ResultID, Expression: ".bars | length"})
	require.NoError(t, err)
	assert.Equal(t, []any{5}, q.Values)

	_, list, err := ToolListResults(d)(ctx, nil, ListResultsInput{})
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Equal(t, view.ResultID, list.Results[0].ResultID)
}

func TestExecute_BodyModes(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "application/json", body: `[{"date":"2024-01-02","close":185.6}]`}
	d := newTestDeps(t, stub)
	ctx := context.Background()
	d.Tokens.Set("get_quote", "tok")

	_, out, err := ToolExecute(d)(ctx, nil, ExecuteInput{EndpointID: "get_quote", BodyMode: BodyModeSchema})
	require.NoError(t, err)
	assert.Nil(t, out.Result.Payload)
	assert.NotNil(t, out.Result.Schema)
	assert.Equal(t, 1, out.Result.Records)

	_, out, err = ToolExecute(d)(ctx, nil, ExecuteInput{EndpointID: "get_quote", BodyMode: BodyModeFull, JQ: ".[0].close"})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"date": "2024-01-02", "close": 185.6}}, out.Result.Payload)
	require.NotNil(t, out.Result.JQ)
	assert.Equal(t, []any{185.6}, out.Result.JQ.Values)
	assert.Equal(t, []string{"symbol"}, out.MissingRequired)

	_, _, err = ToolExecute(d)(ctx, nil, ExecuteInput{EndpointID: "get_quote", BodyMode: "raw"})
	requireCode(t, err, ErrCodeInvalidInput)

	_, _, err = ToolExecute(d)(ctx, nil, ExecuteInput{EndpointID: "get_quote", JQ: ".["})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestExecute_CSV(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "text/csv", body: "date,close\n2024-01-02,185.6\n"}
	d := newTestDeps(t, stub)
	d.Tokens.Set("history", "tok")

	_, out, err := ToolExecute(d)(context.Background(), nil, ExecuteInput{
		EndpointID: "history",
		Params:     map[string]string{"symbol": "AAPL", "format": "csv"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/history?symbol=AAPL&format=csv", stub.lastURI.Load())
	require.NotNil(t, out.Result.CSV)
	assert.Equal(t, []string{"date", "close"}, out.Result.CSV.Columns)
	assert.Equal(t, "csv", out.Result.ContentKind)
	assert.Equal(t, MimeCSV, out.Result.Resource.MIME)
	assert.Nil(t, out.Result.Schema)

	_, out, err = ToolExecute(d)(context.Background(), nil, ExecuteInput{
		EndpointID: "history",
		Params:     map[string]string{"format": "csv"},
		BodyMode:   BodyModeSchema,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Result.CSV, "preview is kept in schema mode")
	profile, ok := out.Result.Schema.(*shape.Profile)
	require.True(t, ok)
	assert.Equal(t, 1, out.Result.Records)
	assert.Equal(t, "date", profile.Columns[0].Format)
	assert.Equal(t, "number", profile.Columns[1].Type)
}

func TestExecute_CSVSkipsJQ(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "text/csv", body: "date,close\n2024-01-02,185.6\n"}
	d := newTestDeps(t, stub)
	d.Tokens.Set("history", "tok")

	_, out, err := ToolExecute(d)(context.Background(), nil, ExecuteInput{
		EndpointID: "history",
		Params:     map[string]string{"format": "csv"},
		JQ:         ".a",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), stub.requests.Load())
	assert.NotEmpty(t, out.Result.ResultID)
	require.NotNil(t, out.Result.CSV)
	assert.Nil(t, out.Result.JQ)
	assert.Contains(t, out.Result.Hint, "jq was not applied")

	_, ok := d.Results.Get(out.Result.ResultID)
	assert.True(t, ok)
}

func TestExecute_InvalidJQSendsNothing(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "text/csv", body: "a\n"}
	d := newTestDeps(t, stub)
	d.Tokens.Set("history", "tok")

	_, _, err := ToolExecute(d)(context.Background(), nil, ExecuteInput{EndpointID: "history", JQ: ".["})
	requireCode(t, err, ErrCodeInvalidInput)
	assert.Equal(t, int32(0), stub.requests.Load())
}

func TestExecute_HTTPErrorIsResult(t *testing.T) {
	stub := &apiStub{status: 403, ctype: "application/json", body: `{"detail":"plan too low"}`}
	d := newTestDeps(t, stub)
	d.Tokens.Set("history", "tok")

	_, out, err := ToolExecute(d)(context.Background(), nil, ExecuteInput{EndpointID: "history"})
	require.NoError(t, err)
	assert.Equal(t, 403, out.Result.Status)
	assert.True(t, out.Result.Failed)
	assert.Equal(t, map[string]any{
		"error":  "HTTP 403 Forbidden",
		"detail": map[string]any{"detail": "plan too low"},
	}, out.Result.Payload)

	_, _, err = ToolQueryResult(d)(context.Background(), nil, QueryResultInput{ResultID: out.Result.ResultID, Expression: "."})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestExecute_UnknownEndpoint(t *testing.T) {
	d := newTestDeps(t, &apiStub{status: 200})

	_, _, err := ToolExecute(d)(context.Background(), nil, ExecuteInput{EndpointID: "nope"})
	requireCode(t, err, ErrCodeNotFound)

	_, _, err = ToolSetToken(d)(context.Background(), nil, SetTokenInput{EndpointID: "nope", Token: "x"})
	requireCode(t, err, ErrCodeNotFound)
}

func TestSetToken_ClearAndPersistAcrossEndpoints(t *testing.T) {
	d := newTestDeps(t, &apiStub{status: 200})
	ctx := context.Background()

	_, out, err := ToolSetToken(d)(ctx, nil, SetTokenInput{EndpointID: "get_quote", Token: "a"})
	require.NoError(t, err)
	assert.True(t, out.Stored)

	_, _, err = ToolSetToken(d)(ctx, nil, SetTokenInput{EndpointID: "history", Token: "b"})
	require.NoError(t, err)
	assert.Equal(t, "a", d.Tokens.Get("get_quote"))

	_, out, err = ToolSetToken(d)(ctx, nil, SetTokenInput{EndpointID: "get_quote"})
	require.NoError(t, err)
	assert.False(t, out.Stored)
	assert.Equal(t, 1, out.Tokens)
}

func TestDescribeEndpoint(t *testing.T) {
	d := newTestDeps(t, &apiStub{status: 200})

	_, out, err := ToolDescribeEndpoint(d)(context.Background(), nil, DescribeEndpointInput{EndpointID: "history"})
	require.NoError(t, err)
	assert.Equal(t, "History", out.Endpoint.Name)
	assert.Equal(t, client.TierPro, out.Endpoint.Category)
	assert.False(t, out.TokenStored)
	assert.Equal(t, []string{"symbol"}, out.MissingRequired)
	assert.Contains(t, out.Curl, "Bearer "+explorer.PlaceholderToken)
	assert.Contains(t, out.Curl, "/api/v1/history?format=json")
}

func TestRenderCurl(t *testing.T) {
	d := newTestDeps(t, &apiStub{status: 200})
	d.Tokens.Set("get_quote", "stored")

	_, out, err := ToolRenderCurl(d)(context.Background(), nil, RenderCurlInput{
		EndpointID: "get_quote",
		Params:     map[string]string{"symbol": "BRK.B"},
	})
	require.NoError(t, err)
	assert.False(t, out.Placeholder)
	assert.Contains(t, out.Curl, "Bearer stored")
	assert.Contains(t, out.URL, "/api/v1/quote?symbol=BRK.B")
}

func TestListAndSearchEndpoints(t *testing.T) {
	d := newTestDeps(t, &apiStub{status: 200})
	ctx := context.Background()

	_, list, err := ToolListEndpoints(d)(ctx, nil, ListEndpointsInput{Tier: "pro"})
	require.NoError(t, err)
	require.Len(t, list.Endpoints, 1)
	assert.Equal(t, "history", list.Endpoints[0].ID)
	assert.Equal(t, CatalogURI(client.TierPro), list.Resource.URI)

	_, _, err = ToolListEndpoints(d)(ctx, nil, ListEndpointsInput{Tier: "gold"})
	requireCode(t, err, ErrCodeInvalidInput)

	_, found, err := ToolSearchEndpoints(d)(ctx, nil, SearchEndpointsInput{Query: "quote"})
	require.NoError(t, err)
	require.Len(t, found.Results, 1)
	assert.Equal(t, "get_quote", found.Results[0].Endpoint.ID)
}

func TestRefreshCatalog(t *testing.T) {
	d := newTestDeps(t, &apiStub{status: 200})

	_, info, err := ToolRefreshCatalog(d)(context.Background(), nil, RefreshCatalogInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, info.Endpoints)
	assert.Equal(t, 1, info.ByTier["pro"])
	assert.Equal(t, 0, info.ByTier["entreprise"])
}

func TestValidateResult(t *testing.T) {
	stub := &apiStub{status: 200, ctype: "application/json", body: `{"symbol":"AAPL","price":"high"}`}
	d := newTestDeps(t, stub)
	ctx := context.Background()
	d.Tokens.Set("get_quote", "tok")

	_, out, err := ToolExecute(d)(ctx, nil, ExecuteInput{EndpointID: "get_quote"})
	require.NoError(t, err)

	schemaDoc := `{"type":"object","required":["symbol","price"],"properties":{"price":{"type":"number"}}}`
	_, v, err := ToolValidateResult(d)(ctx, nil, ValidateResultInput{ResultID: out.Result.ResultID, Schema: schemaDoc})
	require.NoError(t, err)
	assert.False(t, v.Valid)
	require.Len(t, v.Errors, 1)
	assert.Contains(t, v.Errors[0], "/price")

	_, _, err = ToolValidateResult(d)(ctx, nil, ValidateResultInput{ResultID: "missing", Schema: schemaDoc})
	requireCode(t, err, ErrCodeNotFound)

	_, _, err = ToolValidateResult(d)(ctx, nil, ValidateResultInput{ResultID: out.Result.ResultID, Schema: "{"})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestWrapCatalogError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"unknown id", catalog.ErrNotFound, ErrCodeNotFound},
		{"api error", &client.APIError{StatusCode: 500, Message: "boom"}, ErrCodeCatalogError},
		{"route missing", &client.APIError{StatusCode: 404, Message: "nope"}, ErrCodeCatalogError},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"other", errors.New("connection refused"), ErrCodeCatalogError},
		{"already coded", ErrInvalidInput("bad"), ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, WrapCatalogError(tt.err), tt.code)
		})
	}
	assert.NoError(t, WrapCatalogError(nil))
}
