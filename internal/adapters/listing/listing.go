// Package listing provides the file-host collaborators the resolver
// consumes: something that can list filenames and fetch one file into
// memory. The resolver itself never talks to a host; it only sees the flat
// name list a Source returns.
package listing

import "context"

// Source is a file host that can be listed and fetched from. Implementations
// connect per call; the service layer caches results, not connections.
type Source interface {
	// Name identifies the source in logs and lookup records.
	Name() string

	// List returns the filenames visible in the source's directory, in
	// whatever order the host reports them. The resolver imposes no
	// ordering requirement.
	List(ctx context.Context) ([]string, error)

	// Fetch downloads a single file into memory.
	Fetch(ctx context.Context, name string) ([]byte, error)
}
