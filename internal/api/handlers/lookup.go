package handlers

import (
	"net/http"

	"github.com/jdewael/steekkaart-backend/internal/api/dto"
)

// LookupHandler serves personnel and vehicle lookups.
type LookupHandler struct {
	Base
	svc RosterService
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(svc RosterService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// Personnel handles GET /api/lookup/personnel?number=... - exact match on
// the personnel number across the window.
func (h *LookupHandler) Personnel(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("query parameter 'number' is required"))
		return
	}

	res, err := h.svc.SearchPersonnel(r.Context(), number)
	if err != nil {
		h.WriteError(w, http.StatusBadGateway, dto.UpstreamError(err.Error()))
		return
	}

	h.WriteJSON(w, http.StatusOK, searchResponse(res))
}

// Vehicle handles GET /api/lookup/vehicle?code=... - partial, case-insensitive
// match on the vehicle and vehicle-change codes.
func (h *LookupHandler) Vehicle(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("query parameter 'code' is required"))
		return
	}

	res, err := h.svc.SearchVehicle(r.Context(), code)
	if err != nil {
		h.WriteError(w, http.StatusBadGateway, dto.UpstreamError(err.Error()))
		return
	}

	h.WriteJSON(w, http.StatusOK, searchResponse(res))
}
