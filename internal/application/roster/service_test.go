package roster

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jdewael/steekkaart-backend/internal/domain/columns"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/storage"
)

// fakeSource is an in-memory listing.Source.
type fakeSource struct {
	names     []string
	files     map[string][]byte
	listCalls int
	listErr   error
	fetchErr  error
}

func (f *fakeSource) Name() string { return "fake://roster" }

func (f *fakeSource) List(context.Context) ([]string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.names, nil
}

func (f *fakeSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", name)
	}
	return data, nil
}

// rosterHeaders is a realistic header line with drifted spacing/casing.
var rosterHeaders = []interface{}{
	"Personeel Nummer", "Dienstadres", "Uur", "Plaats", "Richting",
	"Loop", "Naam", "Voertuig", "VoertuigWissel",
}

func rosterWorkbook(t *testing.T, sheet string, dataRows ...[]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	rows := append([][]interface{}{rosterHeaders}, dataRows...)
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// newTestService wires a service over the fake source with a frozen clock
// (today = 2026-02-15).
func newTestService(t *testing.T, src *fakeSource, repo storage.Repository) *Service {
	t.Helper()
	svc := New(DefaultConfig(), src, repo, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func twoDaySource(t *testing.T) *fakeSource {
	t.Helper()
	// Yesterday's and today's files exist; tomorrow's does not.
	yesterday := rosterWorkbook(t, "Dienstlijst",
		[]interface{}{38529, "Depot Noord", "05:40", "Gent", "Heen", "L12", "Verbeke", "BUS-6310", ""},
	)
	today := rosterWorkbook(t, "Dienstlijst",
		[]interface{}{"38529.0", "Depot Noord", "06:12", "Gent", "Heen", "L12", "Verbeke", "BUS-6310", "BUS-7001"},
		[]interface{}{40001, "Depot Zuid", "07:45", "Brugge", "Terug", "L03", "Maes", "TRAM-21", ""},
	)
	return &fakeSource{
		names: []string{"20260214_dienst.xlsx", "20260215_dienst.xlsx", "notes.txt"},
		files: map[string][]byte{
			"20260214_dienst.xlsx": yesterday,
			"20260215_dienst.xlsx": today,
		},
	}
}

func TestService_Window(t *testing.T) {
	src := twoDaySource(t)
	svc := newTestService(t, src, nil)

	w, err := svc.Window(context.Background())
	require.NoError(t, err)

	require.Len(t, w.Days, 3)
	assert.Equal(t, "fake://roster", w.Source)

	yesterday, today, tomorrow := w.Days[0], w.Days[1], w.Days[2]

	assert.Equal(t, LabelYesterday, yesterday.Label)
	assert.True(t, yesterday.FileFound)
	assert.Equal(t, "20260214_dienst.xlsx", yesterday.Filename)
	assert.Len(t, yesterday.Rows, 1)

	assert.Equal(t, LabelToday, today.Label)
	assert.True(t, today.FileFound)
	assert.Len(t, today.Rows, 2)
	assert.Equal(t, "38529", today.Rows[0][ColPersonnel], "float artifact stripped on load")
	assert.Equal(t, "Verbeke", today.Rows[0][ColName])

	assert.Equal(t, LabelTomorrow, tomorrow.Label)
	assert.False(t, tomorrow.FileFound)
	assert.Empty(t, tomorrow.Rows)
}

func TestService_WindowCaching(t *testing.T) {
	src := twoDaySource(t)
	svc := newTestService(t, src, nil)

	_, err := svc.Window(context.Background())
	require.NoError(t, err)
	_, err = svc.Window(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.listCalls, "second read served from cache")

	svc.Refresh()
	_, err = svc.Window(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.listCalls, "refresh forces a reload")
}

func TestService_WindowCacheDisabled(t *testing.T) {
	src := twoDaySource(t)
	cfg := DefaultConfig()
	cfg.CacheTTL = 0
	svc := New(cfg, src, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC) }

	_, err := svc.Window(context.Background())
	require.NoError(t, err)
	_, err = svc.Window(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.listCalls)
}

func TestService_SearchPersonnel(t *testing.T) {
	src := twoDaySource(t)
	repo := storage.NewMockRepository()
	svc := newTestService(t, src, repo)

	t.Run("exact match across the window", func(t *testing.T) {
		res, err := svc.SearchPersonnel(context.Background(), "38529")
		require.NoError(t, err)

		assert.Equal(t, "38529", res.Query)
		assert.Equal(t, storage.ModePersonnel, res.Mode)
		assert.Equal(t, 2, res.Hits) // yesterday + today
		require.Len(t, res.Days, 3)
		assert.Len(t, res.Days[0].Rows, 1)
		assert.Len(t, res.Days[1].Rows, 1)
		assert.Empty(t, res.Days[2].Rows)
	})

	t.Run("query goes through the same normalization as cells", func(t *testing.T) {
		res, err := svc.SearchPersonnel(context.Background(), "  38529.0 ")
		require.NoError(t, err)
		assert.Equal(t, "38529", res.Query)
		assert.Equal(t, 2, res.Hits)
	})

	t.Run("partial number does not match", func(t *testing.T) {
		res, err := svc.SearchPersonnel(context.Background(), "3852")
		require.NoError(t, err)
		assert.Equal(t, 0, res.Hits)
	})

	t.Run("lookup is recorded", func(t *testing.T) {
		require.True(t, repo.SaveLookupCalled)
		rec := repo.LastSavedLookup
		assert.Equal(t, storage.ModePersonnel, rec.Mode)
		assert.Equal(t, 3, rec.DaysSearched)
		assert.Equal(t, []string{"20260214_dienst.xlsx", "20260215_dienst.xlsx"}, rec.Files)
	})
}

func TestService_SearchVehicle(t *testing.T) {
	src := twoDaySource(t)
	svc := newTestService(t, src, storage.NewMockRepository())

	t.Run("partial code matches, case-insensitively", func(t *testing.T) {
		res, err := svc.SearchVehicle(context.Background(), "bus-63")
		require.NoError(t, err)
		assert.Equal(t, storage.ModeVehicle, res.Mode)
		assert.Equal(t, 2, res.Hits)
	})

	t.Run("vehicle-change column is searched too", func(t *testing.T) {
		res, err := svc.SearchVehicle(context.Background(), "7001")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Hits)
	})

	t.Run("no cross-fallback to exact semantics", func(t *testing.T) {
		res, err := svc.SearchVehicle(context.Background(), "tram")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Hits)
	})
}

func TestService_SearchSurvivesHistoryFailure(t *testing.T) {
	src := twoDaySource(t)
	repo := storage.NewMockRepository()
	repo.SaveLookupErr = errors.New("disk full")
	svc := newTestService(t, src, repo)

	res, err := svc.SearchPersonnel(context.Background(), "38529")
	require.NoError(t, err, "history failure must not fail the lookup")
	assert.Equal(t, 2, res.Hits)
}

func TestService_MissingColumnsFailTheLoad(t *testing.T) {
	// A sheet carrying only two of the nine required headers.
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Dienstlijst"))
	require.NoError(t, f.SetCellValue("Dienstlijst", "A1", "personeelnummer"))
	require.NoError(t, f.SetCellValue("Dienstlijst", "B1", "uur"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	broken := buf.Bytes()

	src := &fakeSource{
		names: []string{"20260215_dienst.xlsx"},
		files: map[string][]byte{"20260215_dienst.xlsx": broken},
	}
	svc := newTestService(t, src, nil)

	_, err = svc.Window(context.Background())
	require.Error(t, err)

	var missErr *columns.MissingColumnsError
	require.True(t, errors.As(err, &missErr))
	assert.Contains(t, missErr.Missing, ColVehicle)
	assert.NotContains(t, missErr.Missing, ColPersonnel)
	assert.Contains(t, err.Error(), "20260215_dienst.xlsx")
}

func TestService_WrongSheetFailsTheLoad(t *testing.T) {
	data := rosterWorkbook(t, "Blad1",
		[]interface{}{38529, "Depot Noord", "05:40", "Gent", "Heen", "L12", "Verbeke", "BUS-6310", ""},
	)
	src := &fakeSource{
		names: []string{"20260215_dienst.xlsx"},
		files: map[string][]byte{"20260215_dienst.xlsx": data},
	}
	svc := newTestService(t, src, nil)

	_, err := svc.Window(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dienstlijst")
}

func TestService_ListFailurePropagates(t *testing.T) {
	src := &fakeSource{listErr: errors.New("connection refused")}
	svc := newTestService(t, src, nil)

	_, err := svc.Window(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	_, err = svc.CurrentFile(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestService_CurrentFile(t *testing.T) {
	t.Run("today wins when present", func(t *testing.T) {
		svc := newTestService(t, twoDaySource(t), nil)
		cur, err := svc.CurrentFile(context.Background())
		require.NoError(t, err)
		require.True(t, cur.Found)
		assert.Equal(t, "20260215_dienst.xlsx", cur.Filename)
		assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), cur.Date)
	})

	t.Run("falls back to the most recent earlier file", func(t *testing.T) {
		src := &fakeSource{names: []string{"20260210_a.xlsx", "20260213_b.xlsx", "20260220_future.xlsx"}}
		svc := newTestService(t, src, nil)
		cur, err := svc.CurrentFile(context.Background())
		require.NoError(t, err)
		require.True(t, cur.Found)
		assert.Equal(t, "20260213_b.xlsx", cur.Filename)
	})

	t.Run("nothing usable", func(t *testing.T) {
		src := &fakeSource{names: []string{"20260220_future.xlsx", "readme.txt"}}
		svc := newTestService(t, src, nil)
		cur, err := svc.CurrentFile(context.Background())
		require.NoError(t, err)
		assert.False(t, cur.Found)
	})
}
