package handlers

import (
	"net/http"
	"time"

	"github.com/jdewael/steekkaart-backend/internal/api/dto"
	"github.com/jdewael/steekkaart-backend/internal/application/roster"
)

const dateFormat = "2006-01-02"

// WindowHandler serves the roster window and file-resolution endpoints.
type WindowHandler struct {
	Base
	svc RosterService
}

// NewWindowHandler creates a new window handler.
func NewWindowHandler(svc RosterService) *WindowHandler {
	return &WindowHandler{svc: svc}
}

// Get handles GET /api/window - the loaded three-day window summary.
func (h *WindowHandler) Get(w http.ResponseWriter, r *http.Request) {
	win, err := h.svc.Window(r.Context())
	if err != nil {
		h.WriteError(w, http.StatusBadGateway, dto.UpstreamError(err.Error()))
		return
	}

	days := make([]dto.DayResponse, 0, len(win.Days))
	for _, day := range win.Days {
		days = append(days, dto.DayResponse{
			Label:     day.Label,
			Date:      day.Date.Format(dateFormat),
			Filename:  day.Filename,
			FileFound: day.FileFound,
			RowCount:  len(day.Rows),
		})
	}

	h.WriteJSON(w, http.StatusOK, dto.WindowResponse{
		Source:   win.Source,
		LoadedAt: win.LoadedAt.UTC().Format(time.RFC3339),
		Days:     days,
	})
}

// CurrentFile handles GET /api/current-file - resolves the file that would
// serve a lookup right now, without loading it.
func (h *WindowHandler) CurrentFile(w http.ResponseWriter, r *http.Request) {
	cur, err := h.svc.CurrentFile(r.Context())
	if err != nil {
		h.WriteError(w, http.StatusBadGateway, dto.UpstreamError(err.Error()))
		return
	}

	resp := dto.CurrentFileResponse{Found: cur.Found}
	if cur.Found {
		resp.Filename = cur.Filename
		resp.Date = cur.Date.Format(dateFormat)
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /api/refresh - drops the cached window.
func (h *WindowHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.svc.Refresh()
	h.WriteJSON(w, http.StatusOK, dto.RefreshResponse{Status: "refreshed"})
}

// searchResponse maps an application search result to its API shape.
func searchResponse(res *roster.SearchResult) dto.SearchResponse {
	days := make([]dto.SearchDayResponse, 0, len(res.Days))
	for _, day := range res.Days {
		rows := make([]map[string]string, 0, len(day.Rows))
		for _, row := range day.Rows {
			rows = append(rows, row)
		}
		days = append(days, dto.SearchDayResponse{
			Label:     day.Label,
			Date:      day.Date.Format(dateFormat),
			Filename:  day.Filename,
			FileFound: day.FileFound,
			Rows:      rows,
		})
	}
	return dto.SearchResponse{
		Query: res.Query,
		Mode:  res.Mode,
		Hits:  res.Hits,
		Days:  days,
	}
}
