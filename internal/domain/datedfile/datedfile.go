// Package datedfile selects one spreadsheet file out of a directory listing
// based on the date stamp its name starts with.
//
// The file hosts follow a single naming convention: an 8-digit YYYYMMDD
// stamp, optionally followed by free text, ending in a spreadsheet
// extension (for example "20260127_dienstlijst.xlsx"). Everything here is a
// pure function of its inputs; listing and downloading are the caller's
// concern.
package datedfile

import (
	"time"
)

// dateStampLayout is the 8-digit stamp at the start of a filename.
const dateStampLayout = "20060102"

// dateStampLen is the number of characters in a date stamp.
const dateStampLen = 8

// DefaultExtensions are the spreadsheet extensions the file hosts serve.
var DefaultExtensions = []string{".xlsx", ".xlsm", ".xls"}

// ExtractOptions controls how a date stamp is located in a filename.
type ExtractOptions struct {
	// ScanAnywhere accepts an 8-digit run anywhere in the name when the
	// leading characters do not form a valid date stamp. Some hosts rename
	// files on upload and push the stamp into the middle of the name; the
	// strict leading-stamp convention stays the default.
	ScanAnywhere bool
}

// Candidate is a filename that passed extension and date filtering.
type Candidate struct {
	Name string
	Date time.Time
}

// ExtractDate parses the leading YYYYMMDD stamp of a filename. It returns
// false when the first 8 characters are not all digits or do not form a
// valid calendar date. It never looks past the first 8 characters.
func ExtractDate(name string) (time.Time, bool) {
	return ExtractDateOpts(name, ExtractOptions{})
}

// ExtractDateOpts is ExtractDate with an explicit extraction policy.
func ExtractDateOpts(name string, opts ExtractOptions) (time.Time, bool) {
	if d, ok := parseStampAt(name, 0); ok {
		return d, true
	}
	if !opts.ScanAnywhere {
		return time.Time{}, false
	}
	for i := 1; i+dateStampLen <= len(name); i++ {
		if d, ok := parseStampAt(name, i); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseStampAt attempts to read a valid date stamp starting at offset i.
func parseStampAt(name string, i int) (time.Time, bool) {
	if i+dateStampLen > len(name) {
		return time.Time{}, false
	}
	stamp := name[i : i+dateStampLen]
	for j := 0; j < dateStampLen; j++ {
		if stamp[j] < '0' || stamp[j] > '9' {
			return time.Time{}, false
		}
	}
	// time.Parse rejects impossible calendar dates (month 13, Feb 30, ...).
	d, err := time.Parse(dateStampLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Filter reduces a raw listing to candidates: names with an allowed
// extension and a parseable date stamp. Anything else is silently dropped.
// An empty extension list means DefaultExtensions.
func Filter(names []string, extensions []string, opts ExtractOptions) []Candidate {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	var out []Candidate
	for _, name := range names {
		if !hasAllowedExtension(name, extensions) {
			continue
		}
		d, ok := ExtractDateOpts(name, opts)
		if !ok {
			continue
		}
		out = append(out, Candidate{Name: name, Date: d})
	}
	return out
}

// hasAllowedExtension reports whether name ends in one of the allowed
// extensions, compared case-insensitively.
func hasAllowedExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if len(name) < len(ext) {
			continue
		}
		if equalFold(name[len(name)-len(ext):], ext) {
			return true
		}
	}
	return false
}

// equalFold is an ASCII-only case-insensitive comparison. Extensions are
// ASCII by construction, so this avoids pulling in full Unicode folding.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// SelectExact picks the candidate whose date equals target. When several
// candidates share the target date the lexicographically last full filename
// wins; that tie-break is the deterministic rule used throughout. The
// second return is false when no candidate matches.
func SelectExact(candidates []Candidate, target time.Time) (string, bool) {
	var best string
	found := false
	for _, c := range candidates {
		if !sameDay(c.Date, target) {
			continue
		}
		if !found || c.Name > best {
			best = c.Name
			found = true
		}
	}
	return best, found
}

// SelectMostRecent prefers a candidate dated today; failing that it falls
// back to the maximum date not after today. Ties on a date are broken
// lexicographically-last. The second return is false when no candidate is
// dated today or earlier.
func SelectMostRecent(candidates []Candidate, today time.Time) (string, bool) {
	if name, ok := SelectExact(candidates, today); ok {
		return name, true
	}

	var best Candidate
	found := false
	for _, c := range candidates {
		if dayAfter(c.Date, today) {
			continue
		}
		switch {
		case !found:
			best = c
			found = true
		case dayAfter(c.Date, best.Date):
			best = c
		case sameDay(c.Date, best.Date) && c.Name > best.Name:
			best = c
		}
	}
	if !found {
		return "", false
	}
	return best.Name, true
}

// sameDay compares two instants by calendar date only.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// dayAfter reports whether a falls on a later calendar date than b.
func dayAfter(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() > b.Year()
	}
	return a.YearDay() > b.YearDay()
}

// Stamp formats a date back into the 8-digit filename form.
func Stamp(d time.Time) string {
	return d.Format(dateStampLayout)
}
