package explorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryString(t *testing.T) {
	tests := []struct {
		name   string
		params []Parameter
		want   string
	}{
		{
			name:   "empty value omitted",
			params: []Parameter{{Name: "symbol", Value: "AAPL"}, {Name: "format", Value: ""}},
			want:   "?symbol=AAPL",
		},
		{
			name:   "all empty",
			params: []Parameter{{Name: "symbol"}},
			want:   "",
		},
		{
			name:   "no parameters",
			params: nil,
			want:   "",
		},
		{
			name:   "joined with ampersand",
			params: []Parameter{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
			want:   "?a=1&b=2",
		},
		{
			name:   "values encoded",
			params: []Parameter{{Name: "q", Value: "BRK.B & co"}},
			want:   "?q=BRK.B%20%26%20co",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryString(tt.params))
		})
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AAPL", "AAPL"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a/b?c=d&e", "a%2Fb%3Fc%3Dd%26e"},
		{"é", "%C3%A9"},
		{"2024-01-02T10:00:00Z", "2024-01-02T10%3A00%3A00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeURIComponent(tt.in))
		})
	}
}

func TestRequestURL(t *testing.T) {
	ep := quoteEndpoint()
	ep.SetValues(map[string]string{"symbol": "AAPL"})

	assert.Equal(t, "http://api.test/api/v1/quote?symbol=AAPL", RequestURL("http://api.test", ep))
	assert.Equal(t, "http://api.test/api/v1/quote?symbol=AAPL", RequestURL("http://api.test/", ep))
}

func TestAcceptFor(t *testing.T) {
	ep := &Endpoint{Parameters: []Parameter{{Name: "format", Value: "csv"}}}
	assert.Equal(t, "text/csv", AcceptFor(ep))

	ep.Parameters[0].Value = "CSV"
	assert.Equal(t, "application/json", AcceptFor(ep))

	ep.Parameters[0].Name = "output"
	ep.Parameters[0].Value = "csv"
	assert.Equal(t, "application/json", AcceptFor(ep))
}

func TestRenderCurl(t *testing.T) {
	ep := quoteEndpoint()
	ep.SetValues(map[string]string{"symbol": "AAPL"})

	got := RenderCurl("http://api.test", ep, "tok123")
	want := strings.Join([]string{
		`curl -X GET "http://api.test/api/v1/quote?symbol=AAPL" \`,
		`  -H "accept: application/json" \`,
		`  -H "Authorization: Bearer tok123"`,
	}, "\n")
	assert.Equal(t, want, got)

	assert.Contains(t, RenderCurl("http://api.test", ep, ""), "Bearer "+PlaceholderToken)
}

func TestNewCSVPreview(t *testing.T) {
	text := "date,close\n2024-01-02,185.6\n2024-01-03,184.2\n"

	p := NewCSVPreview(text, 0)
	assert.Equal(t, text, p.Preview)
	assert.False(t, p.Truncated)
	assert.Equal(t, len(text), p.TotalChars)
	assert.Equal(t, CSVFilename, p.Filename)
	assert.Equal(t, []string{"date", "close"}, p.Columns)
	assert.Equal(t, 2, p.Rows)

	p = NewCSVPreview(text, 10)
	assert.Equal(t, "date,close", p.Preview)
	assert.True(t, p.Truncated)
	assert.Equal(t, 2, p.Rows)
}

func TestNewCSVPreview_CountsCharacters(t *testing.T) {
	p := NewCSVPreview("é,è\n", 2)
	assert.Equal(t, "é,", p.Preview)
	assert.Equal(t, 4, p.TotalChars)
}

func TestNewCSVPreview_DefaultLength(t *testing.T) {
	p := NewCSVPreview(strings.Repeat("x", DefaultCSVPreviewChars+5), 0)
	assert.True(t, p.Truncated)
	assert.Len(t, p.Preview, DefaultCSVPreviewChars)
}

func TestCSVDataURI(t *testing.T) {
	assert.Equal(t, "data:text/csv;charset=utf-8,a%2Cb%0A1%2C2", CSVDataURI("a,b\n1,2"))
}
