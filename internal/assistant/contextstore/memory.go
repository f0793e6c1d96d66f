package contextstore

import (
	"context"
	"sync"
	"time"

	"carbon-assistant/internal/common/metrics"
)

// Defaults for the in-memory backend.
const (
	DefaultTTL         = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type sessionState struct {
	data       Context
	lastAccess time.Time
}

// MemoryStore is the default Store backend: a mutex-guarded session map with
// idle-TTL expiry and a hard session cap. Expired sessions are dropped lazily
// on access and on insert; at the cap, the least recently used session is
// evicted to make room.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*sessionState
	ttl         time.Duration
	maxSessions int
}

// NewMemoryStore builds a store with the given idle TTL and session cap.
// Non-positive arguments fall back to the defaults.
func NewMemoryStore(ttl time.Duration, maxSessions int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &MemoryStore{
		sessions:    make(map[string]*sessionState),
		ttl:         ttl,
		maxSessions: maxSessions,
	}
}

// Update appends the intent and entities to the session's history, sets the
// last action, then truncates both histories to their bounds. The session is
// created on first update.
func (m *MemoryStore) Update(_ context.Context, sessionID string, intent IntentRecord, entities []EntityRecord) error {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[sessionID]
	if ok && m.expired(st, now) {
		delete(m.sessions, sessionID)
		ok = false
	}
	if !ok {
		if len(m.sessions) >= m.maxSessions {
			m.evictOldestLocked()
		}
		st = &sessionState{}
		m.sessions[sessionID] = st
	}

	st.data.Intents = append(st.data.Intents, intent)
	st.data.Entities = append(st.data.Entities, entities...)
	st.data.LastAction = intent.Name
	st.data.UpdatedAt = now
	trimContext(&st.data)

	st.lastAccess = now
	metrics.ActiveSessions.WithLabelValues("memory").Set(float64(len(m.sessions)))
	return nil
}

// Context returns a snapshot of the session, or the zero value when the
// session is unknown or has sat idle past the TTL. Reading refreshes the
// session's recency.
func (m *MemoryStore) Context(_ context.Context, sessionID string) (Context, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[sessionID]
	if !ok {
		return Context{}, nil
	}
	if m.expired(st, now) {
		delete(m.sessions, sessionID)
		metrics.ActiveSessions.WithLabelValues("memory").Set(float64(len(m.sessions)))
		return Context{}, nil
	}

	st.lastAccess = now
	return st.data.clone(), nil
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// PurgeExpired drops every session past its idle TTL and reports how many
// were removed. Intended for a periodic sweep from the daemon.
func (m *MemoryStore) PurgeExpired() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, st := range m.sessions {
		if m.expired(st, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.ActiveSessions.WithLabelValues("memory").Set(float64(len(m.sessions)))
	}
	return removed
}

func (m *MemoryStore) expired(st *sessionState, now time.Time) bool {
	return now.Sub(st.lastAccess) > m.ttl
}

func (m *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, st := range m.sessions {
		if oldestID == "" || st.lastAccess.Before(oldest) {
			oldestID = id
			oldest = st.lastAccess
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
	}
}
