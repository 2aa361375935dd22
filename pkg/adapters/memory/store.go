package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/animefmt/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[int64]*domain.Session
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL expires sessions that have not been written for ttl.
// Expiry is lazy: a stale entry is dropped when it is next read.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new in-memory store. Sessions never expire unless WithTTL is given.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[int64]*domain.Session),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores a copy of session, replacing any previous one for the same owner.
func (s *Store) Put(ctx context.Context, session *domain.Session) error {
	copied := session.Clone()
	copied.UpdatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.OwnerID] = copied
	return nil
}

// Get returns a copy of the owner's session so callers can't mutate the stored one.
func (s *Store) Get(ctx context.Context, ownerID int64) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.data[ownerID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(session) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if current, ok := s.data[ownerID]; ok && s.expired(current) {
			delete(s.data, ownerID)
		}
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Delete removes the owner's session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, ownerID)
	return nil
}

// Len reports how many sessions are held, including ones awaiting lazy expiry.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) expired(session *domain.Session) bool {
	return s.ttl > 0 && s.now().Sub(session.UpdatedAt) > s.ttl
}
