// Package dataset shares the currently loaded fight-songs dataset between
// sessions and reloads it when the CSV changes on disk.
package dataset

import (
	"sync"
	"sync/atomic"

	"github.com/wexinc/fightsongs/internal/songs"
)

// Source holds the current dataset. Readers get an immutable snapshot and
// never block; Reload swaps the pointer.
type Source struct {
	path    string
	current atomic.Pointer[songs.Dataset]
	lastErr atomic.Pointer[error]

	// reloadMu serializes reloads so fingerprints are compared in order.
	reloadMu sync.Mutex
}

// NewSource creates a source for path and performs the initial load. A load
// failure is recorded, not returned: the source then reports no data until
// a later Reload succeeds.
func NewSource(path string) *Source {
	s := &Source{path: path}
	_, _ = s.Reload()
	return s
}

// NewStaticSource wraps an already loaded dataset. Reload keeps returning
// it unchanged.
func NewStaticSource(ds *songs.Dataset) *Source {
	s := &Source{}
	s.current.Store(ds)
	return s
}

// Path returns the data file path.
func (s *Source) Path() string { return s.path }

// Dataset returns the current dataset, or nil when no data is available.
func (s *Source) Dataset() *songs.Dataset {
	return s.current.Load()
}

// Err returns the error from the most recent load, if it failed.
func (s *Source) Err() error {
	if p := s.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Reload re-reads the file and reports whether the content fingerprint
// changed. A failed load clears the dataset so every view shows the no-data
// state, and counts as a change when data was previously available.
func (s *Source) Reload() (bool, error) {
	if s.path == "" {
		return false, nil
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	prev := s.current.Load()
	ds, err := songs.Load(s.path)
	if err != nil {
		s.lastErr.Store(&err)
		s.current.Store(nil)
		return prev != nil, err
	}

	s.lastErr.Store(nil)
	s.current.Store(ds)
	return prev.Version() != ds.Version(), nil
}
