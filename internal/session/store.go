// Package session records per-user search history and derives affinity
// signals from it.
//
// History is process-scoped shared mutable state: when the engine runs
// behind a concurrent server, every append and read goes through the
// store's lock and reads return snapshot copies, never live slices.
package session

import (
	"sync"

	"github.com/partscout/partscout/pkg/types"
)

// DefaultMaxHistory caps the per-user history length. The reference
// behavior grew history without bound; the cap keeps the store from
// leaking while retaining enough records for affinity extraction.
// Zero disables the cap.
const DefaultMaxHistory = 100

// Store is the session history collaborator injected into the
// orchestrator. Implementations must preserve per-user arrival order
// and never reorder or deduplicate records.
type Store interface {
	// Append records one search for a user.
	Append(userID string, rec types.SearchRecord)

	// History returns a snapshot of the user's records in arrival
	// order. The returned slice is owned by the caller.
	History(userID string) []types.SearchRecord

	// Users returns the IDs of users with recorded history.
	Users() []string
}

// MemoryStore is the in-memory Store. Oldest records are evicted once a
// user's history exceeds maxHistory.
type MemoryStore struct {
	mu         sync.RWMutex
	history    map[string][]types.SearchRecord
	maxHistory int
}

// NewMemoryStore creates a store capped at DefaultMaxHistory records
// per user.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithCap(DefaultMaxHistory)
}

// NewMemoryStoreWithCap creates a store with an explicit per-user cap.
// A cap <= 0 disables eviction.
func NewMemoryStoreWithCap(maxHistory int) *MemoryStore {
	return &MemoryStore{
		history:    make(map[string][]types.SearchRecord),
		maxHistory: maxHistory,
	}
}

// Append implements Store.
func (s *MemoryStore) Append(userID string, rec types.SearchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.history[userID], rec)
	if s.maxHistory > 0 && len(records) > s.maxHistory {
		// Copy instead of reslicing so evicted records are freed.
		trimmed := make([]types.SearchRecord, s.maxHistory)
		copy(trimmed, records[len(records)-s.maxHistory:])
		records = trimmed
	}
	s.history[userID] = records
}

// History implements Store.
func (s *MemoryStore) History(userID string) []types.SearchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.history[userID]
	if len(records) == 0 {
		return nil
	}

	snapshot := make([]types.SearchRecord, len(records))
	copy(snapshot, records)
	return snapshot
}

// Users implements Store.
func (s *MemoryStore) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.history))
	for id := range s.history {
		users = append(users, id)
	}
	return users
}

// Len returns the number of records held for a user.
func (s *MemoryStore) Len(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history[userID])
}
