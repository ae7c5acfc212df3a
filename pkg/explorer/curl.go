package explorer

import (
	"fmt"
	"strings"
)

// PlaceholderToken stands in for the bearer token when none is stored.
const PlaceholderToken = "YOUR_API_TOKEN"

// RenderCurl returns a curl command equivalent to the request the executor
// would send for e. Header values are not shell-escaped.
func RenderCurl(baseURL string, e *Endpoint, token string) string {
	if token == "" {
		token = PlaceholderToken
	}

	var b strings.Builder
	fmt.Fprintf(&b, "curl -X %s \"%s\" \\\n", e.Method, RequestURL(baseURL, e))
	fmt.Fprintf(&b, "  -H \"accept: %s\" \\\n", AcceptFor(e))
	fmt.Fprintf(&b, "  -H \"Authorization: Bearer %s\"", token)
	return b.String()
}
