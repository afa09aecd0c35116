package store

import (
	"context"
	"enrollment-dashboard/internal/dashboard"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or expired session id
var ErrSessionNotFound = errors.New("session not found")

// Session is one dashboard addressed by a uuid
type Session struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"createdAt"`
	Dashboard *dashboard.Dashboard `json:"-"`

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen is when the session was last fetched
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// SessionStore keeps dashboards in memory; nothing outlives the process
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create registers a dashboard under a fresh id
func (st *SessionStore) Create(d *dashboard.Dashboard) *Session {
	now := st.now().UTC()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Dashboard: d,
		lastSeen:  now,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a session and marks it as used
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(st.now().UTC())
	return s, nil
}

func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// List returns every session, newest first
func (st *SessionStore) List() []*Session {
	st.mu.RLock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	st.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many went
func (st *SessionStore) Sweep(ttl time.Duration) int {
	cutoff := st.now().UTC().Add(-ttl)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done
func (st *SessionStore) RunSweeper(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(ttl); n > 0 {
				log.Printf("🧹 Expired %d idle sessions (%d left)", n, st.Len())
			}
		}
	}
}
