package listing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource serves a local directory as a file host. Used for the on-prem
// file-share deployments and throughout the tests.
type DirSource struct {
	path string
}

// NewDirSource creates a source over a local directory.
func NewDirSource(path string) *DirSource {
	return &DirSource{path: path}
}

// Name identifies the source in logs and lookup records.
func (s *DirSource) Name() string {
	return "dir://" + s.path
}

// List returns the plain-file names in the directory.
func (s *DirSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.Name(), err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Fetch reads a single file into memory. The name is reduced to its base
// component so a listing entry can never escape the directory.
func (s *DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.path, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", name, s.Name(), err)
	}
	return data, nil
}
