package types

// SearchRequest contains parameters for an endpoint search.
type SearchRequest struct {
	Query  string // Free text query, tokens are ANDed
	Tier   string // Optional tier filter
	Method string // Optional HTTP method filter
	Limit  int    // Page size
	Offset int    // Pagination offset
}

// SearchResult represents a single search result.
type SearchResult struct {
	Endpoint EndpointSummary `json:"endpoint"`
	Score    float64         `json:"score"`
	Matched  []string        `json:"matched,omitempty"`
}

// SearchResponse contains the search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}
