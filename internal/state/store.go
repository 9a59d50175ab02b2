package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/lostfound/internal/catalogue"
)

// Snapshot is the latest catalogue listing available to the UI.
type Snapshot struct {
	Entries             []catalogue.Entry
	Loaded              bool // at least one listing succeeded
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the service has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Find returns the entry with id from the snapshot.
func (s Snapshot) Find(id int64) (catalogue.Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return catalogue.Entry{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the whole listing. When err is non-nil the previous entries
// are kept and the error is recorded.
func (s *Store) Update(entries []catalogue.Entry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Entries = cloneEntries(entries)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.snapshot.Entries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneEntries(entries []catalogue.Entry) []catalogue.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]catalogue.Entry, len(entries))
	copy(dup, entries)
	return dup
}
