package indexer

import (
	"strings"
	"unicode"
)

// tokenDelimiters defines characters that separate tokens, besides whitespace.
const tokenDelimiters = "/?&=.-_:,;'\"()[]{}<>|"

// stopwords are frequent words of English and French endpoint summaries.
var stopwords = map[string]bool{
	"the": true, "of": true, "and": true, "for": true, "to": true, "in": true, "by": true,
	"le": true, "la": true, "les": true, "de": true, "des": true, "du": true, "et": true,
	"un": true, "une": true, "par": true, "pour": true, "en": true, "au": true, "aux": true,
}

// Tokenize splits a string into searchable tokens.
// Lowercases all tokens, drops tokens shorter than 2 characters and stopwords.
func Tokenize(s string) []string {
	s = strings.ToLower(s)

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(tokenDelimiters, r) || unicode.IsSpace(r)
	})

	result := make([]string, 0, len(fields))
	for _, t := range fields {
		if len([]rune(t)) >= 2 && !stopwords[t] {
			result = append(result, t)
		}
	}
	return result
}

// Unique returns tokens without duplicates, keeping first occurrences.
func Unique(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0:0]
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
