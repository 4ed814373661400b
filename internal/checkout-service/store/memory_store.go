package store

import (
	"fmt"
	"sync"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/domain"
)

// Ensure MemoryStore implements SessionStore at compile time.
var _ SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps sessions for the lifetime of the process. The map lock only
// guards lookup and insertion; each record carries its own mutex so that
// read-modify-write on one session never blocks work on another.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*record // sessionID -> record
}

type record struct {
	mu      sync.Mutex
	session *domain.CheckoutSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*record),
	}
}

// Insert stores a copy of a new session.
func (s *MemoryStore) Insert(session *domain.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("%w: %s", ErrSessionExists, session.ID)
	}
	s.sessions[session.ID] = &record{session: session.Clone()}
	return nil
}

// Get returns a snapshot of the session.
func (s *MemoryStore) Get(id string) (*domain.CheckoutSession, error) {
	rec, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.session.Clone(), nil
}

// Update runs fn against a working copy while holding the session's lock and
// commits the copy only if fn succeeds. The committed state is returned as a
// snapshot.
func (s *MemoryStore) Update(id string, fn MutateFunc) (*domain.CheckoutSession, error) {
	rec, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	working := rec.session.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	rec.session = working
	return working.Clone(), nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) lookup(id string) (*record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return rec, nil
}
