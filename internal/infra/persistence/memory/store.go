// Package memory implements the document store in process memory. It is the
// canonical fake for gateway tests and doubles as an ephemeral backend.
package memory

import (
	"context"
	"sync"

	"fitrecon/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.DocumentStore = (*Store)(nil)

// Store keeps the participant collection in memory. Failure injection hooks
// let tests drive every gateway failure path; the op log lets them assert
// call ordering (e.g. delete-before-insert during import).
type Store struct {
	mu      sync.RWMutex
	records []domain.Participant

	connectErr error
	findErr    error
	insertErr  error
	deleteErr  error

	ops         []string
	insertCalls int
}

// NewStore returns an empty in-memory document store.
func NewStore() *Store { return &Store{} }

// Connect verifies connectivity; it fails only when a test injected an error.
func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "connect")
	return s.connectErr
}

// FindAll returns a deep copy of every stored record.
func (s *Store) FindAll(ctx context.Context) ([]domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "find")
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := make([]domain.Participant, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

// InsertMany appends records. Duplicate inserts are tolerated: the
// collection does not deduplicate.
func (s *Store) InsertMany(ctx context.Context, records []domain.Participant) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "insert")
	s.insertCalls++
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
	return len(records), nil
}

// DeleteAll clears the collection.
func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, "delete")
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	n := len(s.records)
	s.records = nil
	return n, nil
}

// Close is a no-op for the memory backend.
func (s *Store) Close() error { return nil }

// Seed replaces the collection contents without touching the op log.
func (s *Store) Seed(records []domain.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = domain.CloneAll(records)
}

// Len reports the current collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// InsertCalls reports how many times InsertMany was invoked, successful or not.
func (s *Store) InsertCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.insertCalls
}

// Ops returns the recorded operation sequence.
func (s *Store) Ops() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ops))
	copy(out, s.ops)
	return out
}

// FailConnect injects an error for subsequent Connect calls.
func (s *Store) FailConnect(err error) { s.mu.Lock(); s.connectErr = err; s.mu.Unlock() }

// FailFind injects an error for subsequent FindAll calls.
func (s *Store) FailFind(err error) { s.mu.Lock(); s.findErr = err; s.mu.Unlock() }

// FailInsert injects an error for subsequent InsertMany calls.
func (s *Store) FailInsert(err error) { s.mu.Lock(); s.insertErr = err; s.mu.Unlock() }

// FailDelete injects an error for subsequent DeleteAll calls.
func (s *Store) FailDelete(err error) { s.mu.Lock(); s.deleteErr = err; s.mu.Unlock() }
