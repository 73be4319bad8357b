// Package identifier canonicalizes employee and vehicle identifiers before
// comparison.
//
// Spreadsheet cells arrive in whatever shape the upstream export produced:
// numbers coerced to text with a trailing ".0", values padded with
// non-breaking spaces, stray whitespace. Both stored cell values and
// user-entered queries must pass through the identical transform so that
// equality means what users expect.
package identifier

import "strings"

// nbsp is the non-breaking space the upstream exports pad cells with.
const nbsp = "\u00a0"

// Normalize returns the canonical form of a raw cell or query value:
// non-breaking spaces become ordinary spaces, surrounding whitespace is
// trimmed and a single trailing ".0" (the float-to-text artifact) is
// removed. An absent cell arrives as the empty string and stays empty.
//
// Only the final ".0" is stripped, exactly once; a value ending in ".0.0"
// keeps its inner ".0". No case-folding happens here: identifiers compare
// case-sensitively in exact mode, and contains mode folds at match time.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, nbsp, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// MatchExact reports whether a canonical cell value equals a canonical
// query. Used for personnel numbers, where partial input must not match.
func MatchExact(cell, query string) bool {
	return cell == query
}

// MatchContains reports whether a canonical cell value contains a canonical
// query, ignoring case. Used for vehicle codes, where a partial plate or
// fleet number should still surface results. An empty query is the caller's
// problem; it matches everything, as substring search always does.
func MatchContains(cell, query string) bool {
	return strings.Contains(strings.ToLower(cell), strings.ToLower(query))
}
