package utils

import "strings"

// maxSearchQueryLen caps a search query before it is dispatched to any
// backend.
const maxSearchQueryLen = 100

// SanitizeSearchQuery normalises a raw search string into a literal
// substring safe to embed in a LIKE/ILIKE pattern:
//
//  1. leading/trailing whitespace is trimmed;
//  2. the result is truncated to 100 runes;
//  3. angle brackets are stripped (display-layer injection defence);
//  4. the LIKE meta-characters \ % _ are escaped so they match literally.
//
// The same sanitized value is used by every backend; an empty result means
// the caller should fall back to an unfiltered listing.
func SanitizeSearchQuery(query string) string {
	q := strings.TrimSpace(query)

	if runes := []rune(q); len(runes) > maxSearchQueryLen {
		q = string(runes[:maxSearchQueryLen])
	}

	q = strings.NewReplacer("<", "", ">", "").Replace(q)

	// Backslash first, so escapes added below are not re-escaped.
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, `%`, `\%`)
	q = strings.ReplaceAll(q, `_`, `\_`)

	return q
}
