package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session: not found")

// Store is an in-memory session store. A coarse lock guards the map
// itself; each session additionally has its own mutex so that message
// handling for one session is serialized without blocking others.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	locks    map[string]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// GetOrCreate returns the session for id, creating it with newSession
// if absent. The second return reports whether the session was created.
func (s *Store) GetOrCreate(id string, newSession func() *Session) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess, false
	}
	sess := newSession()
	s.sessions[id] = sess
	s.order = append(s.order, id)
	s.locks[id] = &sync.Mutex{}
	return sess, true
}

// Get returns the session for id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Acquire locks the per-session mutex for id and returns the unlock
// function. The session must already exist.
func (s *Store) Acquire(id string) (func(), error) {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	lock.Lock()
	return lock.Unlock, nil
}

// List returns all sessions in creation order. The returned pointers
// are live; callers that read concurrently with message handling use
// SnapshotAll instead.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}

// Snapshot returns a deep copy of the session for id, taken under its
// lock so concurrent readers never observe a partial turn.
func (s *Store) Snapshot(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	lock := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	lock.Lock()
	defer lock.Unlock()
	return sess.Clone(), nil
}

// SnapshotAll returns deep copies of every session in creation order.
func (s *Store) SnapshotAll() []*Session {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()

	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		if sess, err := s.Snapshot(id); err == nil {
			out = append(out, sess)
		}
	}
	return out
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// scan calls fn for every session in creation order, holding that
// session's lock for the duration of the call. Status and UpdatedAt
// change under the per-session lock, so scans must take it too.
func (s *Store) scan(fn func(sess *Session)) {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()

	for _, id := range ids {
		s.mu.RLock()
		sess, ok := s.sessions[id]
		lock := s.locks[id]
		s.mu.RUnlock()
		if !ok {
			continue
		}
		lock.Lock()
		fn(sess)
		lock.Unlock()
	}
}

// CountActive returns the number of sessions still in progress.
func (s *Store) CountActive() int {
	n := 0
	s.scan(func(sess *Session) {
		if sess.Status == StatusActive {
			n++
		}
	})
	return n
}

// IdleSince returns the ids of active sessions not updated since the
// cutoff. Callers end each returned session through the normal
// completion path so reporting stays exactly-once.
func (s *Store) IdleSince(cutoff time.Time) []string {
	var ids []string
	s.scan(func(sess *Session) {
		if sess.Status == StatusActive && sess.UpdatedAt.Before(cutoff) {
			ids = append(ids, sess.SessionID)
		}
	})
	return ids
}
