package handlers

import (
	"net/http"
	"time"

	"github.com/jdewael/steekkaart-backend/internal/api/dto"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/storage"
)

// HistoryHandler serves the lookup history and aggregate stats.
type HistoryHandler struct {
	Base
	repo storage.Repository
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(repo storage.Repository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// List handles GET /api/lookups - the most recent lookups, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 50)

	records, err := h.repo.RecentLookups(limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	lookups := make([]dto.LookupRecordResponse, 0, len(records))
	for _, rec := range records {
		lookups = append(lookups, dto.LookupRecordResponse{
			ID:           rec.ID,
			Query:        rec.Query,
			Mode:         rec.Mode,
			Source:       rec.Source,
			Hits:         rec.Hits,
			DaysSearched: rec.DaysSearched,
			Files:        rec.Files,
			DurationMS:   rec.DurationMS,
			LookedUpAt:   rec.LookedUpAt.UTC().Format(time.RFC3339),
		})
	}

	h.WriteJSON(w, http.StatusOK, dto.LookupListResponse{
		Lookups: lookups,
		Count:   len(lookups),
	})
}

// Stats handles GET /api/stats - aggregate lookup statistics.
func (h *HistoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		TotalLookups:     stats.TotalLookups,
		PersonnelLookups: stats.PersonnelLookups,
		VehicleLookups:   stats.VehicleLookups,
		TotalHits:        stats.TotalHits,
		EmptyLookups:     stats.EmptyLookups,
		AvgDurationMS:    stats.AvgDurationMS,
	})
}
