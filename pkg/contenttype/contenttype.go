package contenttype

import (
	"mime"
	"strings"
)

// Kind is how the explorer treats a response body. Anything that is not
// CSV is parsed as JSON.
type Kind string

const (
	KindJSON Kind = "json"
	KindCSV  Kind = "csv"
)

// Detect returns KindCSV when the content-type header contains text/csv,
// KindJSON otherwise. Parameters such as charset do not matter.
func Detect(contentType string) Kind {
	if IsCSV(contentType) {
		return KindCSV
	}
	return KindJSON
}

// IsCSV reports whether the content-type header contains text/csv (case-insensitive).
func IsCSV(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/csv")
}

// IsJSON returns true if the content type indicates JSON (case-insensitive).
func IsJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

// Category is a broad content-type classification, used for diagnostics
// when a body does not match the kind it was classified as.
type Category string

const (
	JSON   Category = "json"
	CSV    Category = "csv"
	HTML   Category = "html"
	XML    Category = "xml"
	Text   Category = "text"
	Binary Category = "binary"
)

// Classify returns the broad content category for a content-type header value.
// Parameters are stripped with mime.ParseMediaType; malformed values fall
// back to the lowercased input. Empty values are Binary.
func Classify(contentType string) Category {
	if contentType == "" {
		return Binary
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.Contains(mediaType, "json"):
		return JSON
	case mediaType == "text/csv" || mediaType == "text/tab-separated-values":
		return CSV
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return HTML
	case strings.Contains(mediaType, "xml"):
		return XML
	case strings.HasPrefix(mediaType, "text/"):
		return Text
	}
	return Binary
}
