// Package session keeps one loaded table per browser session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KaramelBytes/tabdash/internal/table"
)

// Session is the per-user context handed to panels. Table is nil until a file
// has been uploaded; a loaded Table is never mutated.
type Session struct {
	ID       string
	Table    *table.Table
	FileName string
	Size     int64
	LoadedAt time.Time
	lastSeen time.Time
}

// Meta describes an uploaded file.
type Meta struct {
	FileName string
	Size     int64
}

// Store is an in-memory, process-local session registry. Nothing survives a
// restart.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewStore creates a store that forgets sessions idle for longer than ttl.
// A ttl of 0 keeps sessions until the process exits.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns a snapshot of the session, creating an empty one if needed.
func (s *Store) Get(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(id)
	return *sess
}

// Put stores t as the session's table, replacing any previous one.
func (s *Store) Put(id string, t *table.Table, meta Meta) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(id)
	replaced := sess.Table != nil
	sess.Table = t
	sess.FileName = meta.FileName
	sess.Size = meta.Size
	sess.LoadedAt = sess.lastSeen
	s.logger.Debug("table stored", "session", id, "file", meta.FileName, "replaced", replaced)
	return *sess
}

// Drop clears the session's table. It reports whether a table was present.
func (s *Store) Drop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Table == nil {
		return false
	}
	sess.Table = nil
	sess.FileName = ""
	sess.Size = 0
	sess.LoadedAt = time.Time{}
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if s.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired idle sessions", "count", n, "live", s.Len())
			}
		}
	}
}

// lookup must be called with mu held.
func (s *Store) lookup(id string) *Session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}
