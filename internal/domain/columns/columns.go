// Package columns resolves logical column names against the headers that
// actually appear in a loaded sheet.
//
// Header text drifts between uploads ("personeelnummer", "Personeel Nummer",
// "PERSONEELNUMMER "); resolution ignores whitespace and case so the same
// logical column keeps resolving across that drift.
package columns

import (
	"fmt"
	"strings"
	"unicode"
)

// Resolve returns the first actual header whose normalized form equals the
// normalized logical name. Normalization removes all whitespace (including
// non-breaking spaces) and case-folds. The second return is false when no
// header matches. When two headers normalize identically the first one in
// sheet order wins.
func Resolve(headers []string, logical string) (string, bool) {
	want := normalize(logical)
	for _, h := range headers {
		if normalize(h) == want {
			return h, true
		}
	}
	return "", false
}

// ResolveRequired resolves every logical name and returns a map from
// logical name to actual header. Row construction cannot proceed with holes
// in that map, so any unresolved name is a hard failure: the returned error
// is a *MissingColumnsError listing every logical name that failed, not
// just the first.
func ResolveRequired(headers []string, logical []string) (map[string]string, error) {
	resolved := make(map[string]string, len(logical))
	var missing []string
	for _, name := range logical {
		actual, ok := Resolve(headers, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		resolved[name] = actual
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return resolved, nil
}

// MissingColumnsError reports logical columns that could not be resolved
// against the sheet headers.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing from sheet: %s", strings.Join(e.Missing, ", "))
}

// normalize strips all whitespace and case-folds for comparison.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
