// Package booking defines the persistent record store consulted by the
// booking-status tool. A missing record is a domain outcome (ErrNotFound),
// not a system failure; backends reserve plain errors for transport problems.
package booking

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound signals that no record matches the requested booking id.
var ErrNotFound = errors.New("booking not found")

// Record is one reservation entry.
type Record struct {
	ID        string `json:"id"`
	GuestName string `json:"guestName"`
	Room      string `json:"room"`
	Status    string `json:"status"` // confirmed, checked_in, cancelled, ...
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
}

// Store looks up reservation records by booking id.
type Store interface {
	FindByID(ctx context.Context, id string) (*Record, error)
}

// InMemoryStore is a volatile Store keyed by booking id, safe for concurrent
// access. Best suited for tests and demos.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

// Put stores or replaces a record.
func (s *InMemoryStore) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
}

// FindByID implements Store.
func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := rec
	return &out, nil
}
