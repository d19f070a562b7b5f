// Package tags canonicalizes tag tokens so that tag comparisons are
// case- and whitespace-insensitive.
package tags

import "strings"

// Normalize trims, lower-cases and dedupes a list of tag tokens, dropping
// blanks. Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		normalized[tag] = struct{}{}
	}
	return normalized
}

// ContainsAll reports whether set is a superset of query.
func ContainsAll(set, query map[string]struct{}) bool {
	for tag := range query {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}

// ContainsAny reports whether set and query intersect.
func ContainsAny(set, query map[string]struct{}) bool {
	for tag := range query {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}
