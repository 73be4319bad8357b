package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// DayResponse summarizes one day of the roster window.
type DayResponse struct {
	Label     string `json:"label"`
	Date      string `json:"date"`
	Filename  string `json:"filename,omitempty"`
	FileFound bool   `json:"file_found"`
	RowCount  int    `json:"row_count"`
}

// WindowResponse describes the loaded three-day window.
type WindowResponse struct {
	Source   string        `json:"source"`
	LoadedAt string        `json:"loaded_at"`
	Days     []DayResponse `json:"days"`
}

// CurrentFileResponse is the resolved most-recent roster file.
type CurrentFileResponse struct {
	Filename string `json:"filename,omitempty"`
	Date     string `json:"date,omitempty"`
	Found    bool   `json:"found"`
}

// SearchDayResponse holds the matching rows of one day.
type SearchDayResponse struct {
	Label     string              `json:"label"`
	Date      string              `json:"date"`
	Filename  string              `json:"filename,omitempty"`
	FileFound bool                `json:"file_found"`
	Rows      []map[string]string `json:"rows"`
}

// SearchResponse is a lookup evaluated across the window.
type SearchResponse struct {
	Query string              `json:"query"`
	Mode  string              `json:"mode"`
	Hits  int                 `json:"hits"`
	Days  []SearchDayResponse `json:"days"`
}

// RefreshResponse acknowledges a cache invalidation.
type RefreshResponse struct {
	Status string `json:"status"`
}

// LookupRecordResponse represents one recorded lookup.
type LookupRecordResponse struct {
	ID           int64    `json:"id"`
	Query        string   `json:"query"`
	Mode         string   `json:"mode"`
	Source       string   `json:"source"`
	Hits         int      `json:"hits"`
	DaysSearched int      `json:"days_searched"`
	Files        []string `json:"files,omitempty"`
	DurationMS   int64    `json:"duration_ms"`
	LookedUpAt   string   `json:"looked_up_at"`
}

// LookupListResponse is returned when listing recent lookups.
type LookupListResponse struct {
	Lookups []LookupRecordResponse `json:"lookups"`
	Count   int                    `json:"count"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	TotalLookups     int     `json:"total_lookups"`
	PersonnelLookups int     `json:"personnel_lookups"`
	VehicleLookups   int     `json:"vehicle_lookups"`
	TotalHits        int     `json:"total_hits"`
	EmptyLookups     int     `json:"empty_lookups"`
	AvgDurationMS    float64 `json:"avg_duration_ms"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
