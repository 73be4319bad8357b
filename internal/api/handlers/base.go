package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jdewael/steekkaart-backend/internal/api/dto"
	"github.com/jdewael/steekkaart-backend/internal/application/roster"
)

// RosterService is the slice of the roster application the API needs.
type RosterService interface {
	Window(ctx context.Context) (*roster.Window, error)
	CurrentFile(ctx context.Context) (roster.CurrentFile, error)
	SearchPersonnel(ctx context.Context, query string) (*roster.SearchResult, error)
	SearchVehicle(ctx context.Context, query string) (*roster.SearchResult, error)
	Refresh()
}

// Base provides shared response helpers for all handlers.
type Base struct{}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
