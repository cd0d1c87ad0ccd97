// Package taxonomy holds the closed vocabularies shared by the query
// compiler and the extractors, together with the per-endpoint wire
// dialects. The advanced-search and list endpoints use different value
// spellings for the same concept (type "feature" vs "movie", genres
// capitalized vs lower-dashed); every map here records both.
package taxonomy

import "strings"

// Dialect selects the wire spelling for an endpoint family.
type Dialect int

const (
	// DialectSearch is the /search/title and /search/name family.
	DialectSearch Dialect = iota
	// DialectList is the /list and /user family.
	DialectList
)

// Negation and primary markers used on parameter values throughout.
const (
	PrefixNegate  = "!"
	PrefixPrimary = "+"
)

// Negated reports whether the value carries the exclusion prefix and
// returns it stripped.
func Negated(v string) (string, bool) {
	if strings.HasPrefix(v, PrefixNegate) {
		return v[len(PrefixNegate):], true
	}
	return v, false
}

// Primary reports whether the value carries the primary marker and
// returns it stripped.
func Primary(v string) (string, bool) {
	if strings.HasPrefix(v, PrefixPrimary) {
		return v[len(PrefixPrimary):], true
	}
	return v, false
}
