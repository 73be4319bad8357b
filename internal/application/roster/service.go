// Package roster orchestrates the lookup flow: list the file host, pick
// the dated file per day, load its sheet, map the required columns and
// answer personnel/vehicle searches over the result.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jdewael/steekkaart-backend/internal/adapters/listing"
	"github.com/jdewael/steekkaart-backend/internal/adapters/spreadsheet"
	"github.com/jdewael/steekkaart-backend/internal/domain/columns"
	"github.com/jdewael/steekkaart-backend/internal/domain/datedfile"
	"github.com/jdewael/steekkaart-backend/internal/domain/identifier"
	"github.com/jdewael/steekkaart-backend/internal/infrastructure/storage"
)

// Logical column names of the roster sheet.
const (
	ColPersonnel     = "personeelnummer"
	ColServiceAddr   = "dienstadres"
	ColHour          = "uur"
	ColPlace         = "plaats"
	ColDirection     = "richting"
	ColRun           = "loop"
	ColName          = "naam"
	ColVehicle       = "voertuig"
	ColVehicleChange = "voertuigwissel"
)

// Config holds the roster-specific knobs of the service.
type Config struct {
	// Sheet is the workbook tab holding the roster ("" = first sheet).
	Sheet string
	// Columns are the required logical columns.
	Columns []string
	// IDColumns are the columns whose values pass through identifier
	// normalization on load.
	IDColumns []string
	// Extensions restrict the listing ("" slice = spreadsheet defaults).
	Extensions []string
	// ScanAnywhere extends date extraction past the leading stamp.
	ScanAnywhere bool
	// CacheTTL bounds the staleness of the loaded window (0 = no cache).
	CacheTTL time.Duration
}

// DefaultConfig mirrors the production roster sheet.
func DefaultConfig() Config {
	return Config{
		Sheet: "Dienstlijst",
		Columns: []string{
			ColPersonnel, ColServiceAddr, ColHour, ColPlace, ColDirection,
			ColRun, ColName, ColVehicle, ColVehicleChange,
		},
		IDColumns: []string{ColPersonnel, ColVehicle, ColVehicleChange},
		CacheTTL:  5 * time.Minute,
	}
}

// Service answers roster lookups over a listing source.
type Service struct {
	cfg    Config
	source listing.Source
	repo   storage.Repository
	logger *slog.Logger
	cache  *windowCache

	// now is swappable for tests; the window is anchored to "today".
	now func() time.Time
}

// New creates a roster service. repo may be nil to disable lookup history.
func New(cfg Config, source listing.Source, repo storage.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:    cfg,
		source: source,
		repo:   repo,
		logger: logger,
		cache:  newWindowCache(cfg.CacheTTL),
		now:    time.Now,
	}
}

// Window returns the three-day roster snapshot, from cache when fresh.
func (s *Service) Window(ctx context.Context) (*Window, error) {
	now := s.now()
	if w, ok := s.cache.get(now); ok {
		return w, nil
	}

	w, err := s.loadWindow(ctx, now)
	if err != nil {
		return nil, err
	}
	s.cache.put(w, now)
	return w, nil
}

// Refresh drops the cached window so the next request reloads from the host.
func (s *Service) Refresh() {
	s.cache.invalidate()
	s.logger.Info("roster cache invalidated")
}

// CurrentFile resolves the most-recent-up-to-today file without loading it.
func (s *Service) CurrentFile(ctx context.Context) (CurrentFile, error) {
	names, err := s.source.List(ctx)
	if err != nil {
		return CurrentFile{}, err
	}

	candidates := datedfile.Filter(names, s.cfg.Extensions, s.extractOpts())
	name, ok := datedfile.SelectMostRecent(candidates, s.now())
	if !ok {
		return CurrentFile{Found: false}, nil
	}

	d, _ := datedfile.ExtractDateOpts(name, s.extractOpts())
	return CurrentFile{Filename: name, Date: d, Found: true}, nil
}

// SearchPersonnel finds roster lines whose personnel number equals the
// query exactly. Partial numbers never match.
func (s *Service) SearchPersonnel(ctx context.Context, query string) (*SearchResult, error) {
	q := identifier.Normalize(query)
	return s.search(ctx, q, storage.ModePersonnel, func(row Row) bool {
		return identifier.MatchExact(row[ColPersonnel], q)
	})
}

// SearchVehicle finds roster lines whose vehicle or vehicle-change code
// contains the query, ignoring case, so a partial fleet number still
// surfaces results.
func (s *Service) SearchVehicle(ctx context.Context, query string) (*SearchResult, error) {
	q := identifier.Normalize(query)
	return s.search(ctx, q, storage.ModeVehicle, func(row Row) bool {
		return identifier.MatchContains(row[ColVehicle], q) ||
			identifier.MatchContains(row[ColVehicleChange], q)
	})
}

// search evaluates a row predicate across the window and records the lookup.
func (s *Service) search(ctx context.Context, query, mode string, match func(Row) bool) (*SearchResult, error) {
	started := s.now()

	w, err := s.Window(ctx)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{Query: query, Mode: mode}
	for _, day := range w.Days {
		dr := DayResult{
			Label:     day.Label,
			Date:      day.Date,
			Filename:  day.Filename,
			FileFound: day.FileFound,
			Rows:      []Row{},
		}
		for _, row := range day.Rows {
			if match(row) {
				dr.Rows = append(dr.Rows, row)
			}
		}
		result.Hits += len(dr.Rows)
		result.Days = append(result.Days, dr)
	}

	s.recordLookup(w, result, s.now().Sub(started))
	return result, nil
}

// recordLookup writes the search to history. History is best-effort: a
// storage failure must never fail the lookup itself.
func (s *Service) recordLookup(w *Window, result *SearchResult, took time.Duration) {
	if s.repo == nil {
		return
	}

	var files []string
	for _, day := range w.Days {
		if day.FileFound {
			files = append(files, day.Filename)
		}
	}

	rec := &storage.LookupRecord{
		Query:        result.Query,
		Mode:         result.Mode,
		Source:       s.source.Name(),
		Hits:         result.Hits,
		DaysSearched: len(w.Days),
		Files:        files,
		DurationMS:   took.Milliseconds(),
		LookedUpAt:   s.now().UTC(),
	}
	if err := s.repo.SaveLookup(rec); err != nil {
		s.logger.Warn("failed to record lookup", "mode", result.Mode, "error", err)
	}
}

// loadWindow lists the host once and loads the exact-date file for each of
// the three days. A day without a file stays empty; a file that cannot be
// fetched, parsed or column-mapped fails the whole load.
func (s *Service) loadWindow(ctx context.Context, now time.Time) (*Window, error) {
	names, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	candidates := datedfile.Filter(names, s.cfg.Extensions, s.extractOpts())

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	w := &Window{Source: s.source.Name(), LoadedAt: now}

	for _, entry := range windowOffsets {
		target := today.AddDate(0, 0, entry.Offset)
		day := Day{Label: entry.Label, Date: target}

		name, ok := datedfile.SelectExact(candidates, target)
		if !ok {
			s.logger.Info("no roster file for day", "day", entry.Label, "date", datedfile.Stamp(target))
			w.Days = append(w.Days, day)
			continue
		}

		rows, err := s.loadDay(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("loading %s (%s): %w", name, entry.Label, err)
		}

		day.Filename = name
		day.FileFound = true
		day.Rows = rows
		w.Days = append(w.Days, day)

		s.logger.Info("roster file loaded",
			"day", entry.Label, "file", name, "rows", len(rows))
	}

	return w, nil
}

// loadDay fetches one file and turns its sheet into prepared rows.
func (s *Service) loadDay(ctx context.Context, name string) ([]Row, error) {
	data, err := s.source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	table, err := spreadsheet.Load(data, s.cfg.Sheet)
	if err != nil {
		return nil, err
	}

	return s.prepareRows(table)
}

// prepareRows resolves the required columns against the sheet headers and
// builds rows keyed by logical name, normalizing identifier columns so
// both sides of every later comparison share one transform.
func (s *Service) prepareRows(table *spreadsheet.Table) ([]Row, error) {
	resolved, err := columns.ResolveRequired(table.Headers, s.cfg.Columns)
	if err != nil {
		return nil, err
	}

	idCols := make(map[string]bool, len(s.cfg.IDColumns))
	for _, c := range s.cfg.IDColumns {
		idCols[c] = true
	}

	rows := make([]Row, 0, table.RowCount())
	for i := 0; i < table.RowCount(); i++ {
		row := make(Row, len(resolved))
		for logical, actual := range resolved {
			v := table.Cell(i, actual)
			if idCols[logical] {
				v = identifier.Normalize(v)
			}
			row[logical] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) extractOpts() datedfile.ExtractOptions {
	return datedfile.ExtractOptions{ScanAnywhere: s.cfg.ScanAnywhere}
}
