package roster

import "time"

// Day labels for the three-day window, in display order.
const (
	LabelYesterday = "yesterday"
	LabelToday     = "today"
	LabelTomorrow  = "tomorrow"
)

// windowOffsets maps each label to its day offset from today.
var windowOffsets = []struct {
	Label  string
	Offset int
}{
	{LabelYesterday, -1},
	{LabelToday, 0},
	{LabelTomorrow, 1},
}

// Row is one roster line, keyed by logical column name. Identifier columns
// hold canonical values; the rest hold cell text as loaded.
type Row map[string]string

// Day is the loaded roster for one calendar date. FileFound is false when
// the host had no file for that date; that is an empty state, not an error.
type Day struct {
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	Filename  string    `json:"filename,omitempty"`
	FileFound bool      `json:"file_found"`
	Rows      []Row     `json:"-"`
}

// Window is the three-day roster snapshot served from cache.
type Window struct {
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Days     []Day     `json:"days"`
}

// DayResult is the per-day slice of a search result.
type DayResult struct {
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	Filename  string    `json:"filename,omitempty"`
	FileFound bool      `json:"file_found"`
	Rows      []Row     `json:"rows"`
}

// SearchResult is a query evaluated across the whole window.
type SearchResult struct {
	Query string      `json:"query"` // canonical form actually compared
	Mode  string      `json:"mode"`
	Hits  int         `json:"hits"`
	Days  []DayResult `json:"days"`
}

// CurrentFile is the outcome of the most-recent-up-to-today resolution.
type CurrentFile struct {
	Filename string    `json:"filename,omitempty"`
	Date     time.Time `json:"date,omitempty"`
	Found    bool      `json:"found"`
}
