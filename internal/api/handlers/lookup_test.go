package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewael/steekkaart-backend/internal/api/dto"
	"github.com/jdewael/steekkaart-backend/internal/api/handlers"
	"github.com/jdewael/steekkaart-backend/internal/application/roster"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/storage"
)

// fakeRoster is a canned RosterService for handler tests.
type fakeRoster struct {
	window    *roster.Window
	windowErr error
	current   roster.CurrentFile
	search    *roster.SearchResult
	searchErr error
	refreshed bool
	lastQuery string
	lastMode  string
}

func (f *fakeRoster) Window(context.Context) (*roster.Window, error) {
	return f.window, f.windowErr
}

func (f *fakeRoster) CurrentFile(context.Context) (roster.CurrentFile, error) {
	return f.current, f.windowErr
}

func (f *fakeRoster) SearchPersonnel(_ context.Context, query string) (*roster.SearchResult, error) {
	f.lastQuery, f.lastMode = query, storage.ModePersonnel
	return f.search, f.searchErr
}

func (f *fakeRoster) SearchVehicle(_ context.Context, query string) (*roster.SearchResult, error) {
	f.lastQuery, f.lastMode = query, storage.ModeVehicle
	return f.search, f.searchErr
}

func (f *fakeRoster) Refresh() { f.refreshed = true }

func sampleResult() *roster.SearchResult {
	date := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	return &roster.SearchResult{
		Query: "38529",
		Mode:  storage.ModePersonnel,
		Hits:  1,
		Days: []roster.DayResult{
			{Label: roster.LabelYesterday, Date: date.AddDate(0, 0, -1), Rows: []roster.Row{}},
			{
				Label: roster.LabelToday, Date: date,
				Filename: "20260215_dienst.xlsx", FileFound: true,
				Rows: []roster.Row{{roster.ColPersonnel: "38529", roster.ColName: "Verbeke"}},
			},
			{Label: roster.LabelTomorrow, Date: date.AddDate(0, 0, 1), Rows: []roster.Row{}},
		},
	}
}

func TestLookupHandler_Personnel(t *testing.T) {
	t.Run("returns mapped search result", func(t *testing.T) {
		svc := &fakeRoster{search: sampleResult()}
		handler := handlers.NewLookupHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/lookup/personnel?number=38529", nil)
		rec := httptest.NewRecorder()

		handler.Personnel(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "38529", svc.lastQuery)

		var response dto.SearchResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		assert.Equal(t, "38529", response.Query)
		assert.Equal(t, storage.ModePersonnel, response.Mode)
		assert.Equal(t, 1, response.Hits)
		require.Len(t, response.Days, 3)
		assert.Equal(t, "2026-02-15", response.Days[1].Date)
		require.Len(t, response.Days[1].Rows, 1)
		assert.Equal(t, "Verbeke", response.Days[1].Rows[0][roster.ColName])
		assert.NotNil(t, response.Days[0].Rows, "empty days serialize as [], not null")
	})

	t.Run("returns 400 when number is missing", func(t *testing.T) {
		handler := handlers.NewLookupHandler(&fakeRoster{})

		req := httptest.NewRequest(http.MethodGet, "/api/lookup/personnel", nil)
		rec := httptest.NewRecorder()

		handler.Personnel(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var response dto.APIError
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, dto.ErrCodeBadRequest, response.Code)
	})

	t.Run("returns 502 when the file host fails", func(t *testing.T) {
		svc := &fakeRoster{searchErr: errors.New("connection refused")}
		handler := handlers.NewLookupHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/lookup/personnel?number=38529", nil)
		rec := httptest.NewRecorder()

		handler.Personnel(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var response dto.APIError
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, dto.ErrCodeUpstream, response.Code)
	})
}

func TestLookupHandler_Vehicle(t *testing.T) {
	t.Run("routes to the vehicle search", func(t *testing.T) {
		res := sampleResult()
		res.Mode = storage.ModeVehicle
		svc := &fakeRoster{search: res}
		handler := handlers.NewLookupHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/lookup/vehicle?code=bus-63", nil)
		rec := httptest.NewRecorder()

		handler.Vehicle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, storage.ModeVehicle, svc.lastMode)
		assert.Equal(t, "bus-63", svc.lastQuery)
	})

	t.Run("returns 400 when code is missing", func(t *testing.T) {
		handler := handlers.NewLookupHandler(&fakeRoster{})

		req := httptest.NewRequest(http.MethodGet, "/api/lookup/vehicle", nil)
		rec := httptest.NewRecorder()

		handler.Vehicle(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWindowHandler(t *testing.T) {
	date := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	window := &roster.Window{
		Source:   "ftp://files.example.be/steekkaart",
		LoadedAt: date.Add(10 * time.Hour),
		Days: []roster.Day{
			{Label: roster.LabelYesterday, Date: date.AddDate(0, 0, -1), Filename: "20260214_dienst.xlsx", FileFound: true, Rows: []roster.Row{{}}},
			{Label: roster.LabelToday, Date: date, Filename: "20260215_dienst.xlsx", FileFound: true, Rows: []roster.Row{{}, {}}},
			{Label: roster.LabelTomorrow, Date: date.AddDate(0, 0, 1)},
		},
	}

	t.Run("GET window summarizes each day", func(t *testing.T) {
		handler := handlers.NewWindowHandler(&fakeRoster{window: window})

		req := httptest.NewRequest(http.MethodGet, "/api/window", nil)
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.WindowResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)

		assert.Equal(t, "ftp://files.example.be/steekkaart", response.Source)
		require.Len(t, response.Days, 3)
		assert.Equal(t, 2, response.Days[1].RowCount)
		assert.False(t, response.Days[2].FileFound)
	})

	t.Run("GET window surfaces load failures as 502", func(t *testing.T) {
		handler := handlers.NewWindowHandler(&fakeRoster{windowErr: errors.New("530 login incorrect")})

		req := httptest.NewRequest(http.MethodGet, "/api/window", nil)
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("GET current-file reports the resolved file", func(t *testing.T) {
		svc := &fakeRoster{current: roster.CurrentFile{
			Filename: "20260215_dienst.xlsx",
			Date:     date,
			Found:    true,
		}}
		handler := handlers.NewWindowHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/current-file", nil)
		rec := httptest.NewRecorder()

		handler.CurrentFile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.CurrentFileResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)
		assert.True(t, response.Found)
		assert.Equal(t, "20260215_dienst.xlsx", response.Filename)
		assert.Equal(t, "2026-02-15", response.Date)
	})

	t.Run("GET current-file with nothing usable", func(t *testing.T) {
		handler := handlers.NewWindowHandler(&fakeRoster{})

		req := httptest.NewRequest(http.MethodGet, "/api/current-file", nil)
		rec := httptest.NewRecorder()

		handler.CurrentFile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.CurrentFileResponse
		err := json.NewDecoder(rec.Body).Decode(&response)
		require.NoError(t, err)
		assert.False(t, response.Found)
		assert.Empty(t, response.Filename)
	})

	t.Run("POST refresh invalidates the cache", func(t *testing.T) {
		svc := &fakeRoster{}
		handler := handlers.NewWindowHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		rec := httptest.NewRecorder()

		handler.Refresh(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.refreshed)
	})
}
