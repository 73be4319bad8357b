package storage

import "time"

// Lookup modes as recorded in history.
const (
	ModePersonnel = "personnel"
	ModeVehicle   = "vehicle"
)

// LookupRecord is one executed search against the roster window.
type LookupRecord struct {
	ID           int64     `json:"id"`
	Query        string    `json:"query"` // canonical form, as compared
	Mode         string    `json:"mode"`  // "personnel" or "vehicle"
	Source       string    `json:"source"`
	Hits         int       `json:"hits"`
	DaysSearched int       `json:"days_searched"`
	DurationMS   int64     `json:"duration_ms"`
	LookedUpAt   time.Time `json:"looked_up_at"`

	// Files are the dated filenames the search ran against.
	Files     []string `json:"files"`
	FilesJSON string   `json:"-"` // DB storage form
}

// Stats aggregates the lookup history.
type Stats struct {
	TotalLookups     int     `json:"total_lookups"`
	PersonnelLookups int     `json:"personnel_lookups"`
	VehicleLookups   int     `json:"vehicle_lookups"`
	TotalHits        int     `json:"total_hits"`
	EmptyLookups     int     `json:"empty_lookups"`
	AvgDurationMS    float64 `json:"avg_duration_ms"`
}
