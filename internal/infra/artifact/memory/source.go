// Package memory implements an in-memory artifact Source for tests.
package memory

import (
	"context"
	"sync"

	"fitrecon/internal/artifact/core"
	"fitrecon/pkg/domain"
)

// Source serves a fixed record set from process memory. A nil record set
// behaves as an absent artifact; an injected error overrides everything.
type Source struct {
	mu      sync.Mutex
	records []domain.Participant
	err     error
	fetches int
	delay   func() // optional hook, runs inside Fetch before returning
}

// New returns an in-memory artifact source seeded with records.
func New(records []domain.Participant) *Source {
	return &Source{records: records}
}

func (s *Source) Driver() core.Driver { return core.DriverMemory }

// Fetch returns a deep copy of the seeded records, core.ErrNotFound when
// none were seeded, or the injected error.
func (s *Source) Fetch(_ context.Context) ([]domain.Participant, error) {
	s.mu.Lock()
	s.fetches++
	err := s.err
	records := s.records
	delay := s.delay
	s.mu.Unlock()
	if delay != nil {
		delay()
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		return nil, core.ErrNotFound
	}
	return domain.CloneAll(records), nil
}

// FailWith makes every subsequent Fetch return err.
func (s *Source) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// SetDelay installs a hook that runs inside Fetch, letting tests widen race
// windows deterministically.
func (s *Source) SetDelay(fn func()) {
	s.mu.Lock()
	s.delay = fn
	s.mu.Unlock()
}

// Fetches reports how many times Fetch was called.
func (s *Source) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}
