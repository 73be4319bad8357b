package storage

// Repository defines the lookup-history storage interface. An interface
// keeps the SQLite implementation swappable and makes testing with the
// in-memory mock straightforward.
type Repository interface {
	// SaveLookup records one executed search.
	SaveLookup(rec *LookupRecord) error

	// RecentLookups returns the most recent lookups, newest first.
	RecentLookups(limit int) ([]*LookupRecord, error)

	// Stats returns aggregate lookup statistics.
	Stats() (*Stats, error)

	Close() error
}
