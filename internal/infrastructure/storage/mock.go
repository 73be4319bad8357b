package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	lookups []*LookupRecord
	nextID  int64

	// Hooks for test assertions
	SaveLookupCalled bool
	LastSavedLookup  *LookupRecord

	// Error injection for testing error paths
	SaveLookupErr    error
	RecentLookupsErr error
	StatsErr         error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing.
func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

// Close does nothing for the mock.
func (m *MockRepository) Close() error {
	return nil
}

// SaveLookup stores the record in memory.
func (m *MockRepository) SaveLookup(rec *LookupRecord) error {
	m.SaveLookupCalled = true
	m.LastSavedLookup = rec
	if m.SaveLookupErr != nil {
		return m.SaveLookupErr
	}
	copied := *rec
	copied.ID = m.nextID
	m.nextID++
	rec.ID = copied.ID
	m.lookups = append(m.lookups, &copied)
	return nil
}

// RecentLookups returns stored records, newest first.
func (m *MockRepository) RecentLookups(limit int) ([]*LookupRecord, error) {
	if m.RecentLookupsErr != nil {
		return nil, m.RecentLookupsErr
	}
	if limit <= 0 {
		limit = 50
	}
	out := make([]*LookupRecord, len(m.lookups))
	copy(out, m.lookups)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LookedUpAt.Equal(out[j].LookedUpAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].LookedUpAt.After(out[j].LookedUpAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats aggregates the stored records.
func (m *MockRepository) Stats() (*Stats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	stats := &Stats{}
	var totalMS int64
	for _, rec := range m.lookups {
		stats.TotalLookups++
		stats.TotalHits += rec.Hits
		if rec.Hits == 0 {
			stats.EmptyLookups++
		}
		switch rec.Mode {
		case ModePersonnel:
			stats.PersonnelLookups++
		case ModeVehicle:
			stats.VehicleLookups++
		}
		totalMS += rec.DurationMS
	}
	if stats.TotalLookups > 0 {
		stats.AvgDurationMS = float64(totalMS) / float64(stats.TotalLookups)
	}
	return stats, nil
}
