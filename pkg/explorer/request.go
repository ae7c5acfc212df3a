package explorer

import (
	"net/url"
	"strings"
)

// APIPrefix is prepended to every endpoint path.
const APIPrefix = "/api"

// uriComponentFixups turns url.QueryEscape output into encodeURIComponent
// output: spaces as %20 and the marks !'()* left literal.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI component.
func EncodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}

// QueryString renders the parameters that have a value as
// "?name=value&...", or "" when none has. Names are emitted as-is.
func QueryString(params []Parameter) string {
	var b strings.Builder
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(EncodeURIComponent(p.Value))
	}
	return b.String()
}

// RequestURL returns the full URL the executor calls for e.
func RequestURL(baseURL string, e *Endpoint) string {
	return strings.TrimSuffix(baseURL, "/") + APIPrefix + e.Path + QueryString(e.Parameters)
}

// AcceptFor returns the accept header value for e: text/csv when a format
// parameter is set to exactly "csv", application/json otherwise.
func AcceptFor(e *Endpoint) string {
	if p, ok := e.Param("format"); ok && p.Value == "csv" {
		return "text/csv"
	}
	return "application/json"
}
