// Package session holds in-flight assessment sessions. A session is the
// server-side replacement for the original funnel's browser storage: it
// carries the answer history and pending question between HTTP calls, and is
// discarded once idle past its TTL.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

// State is the question-loop state machine position.
type State string

const (
	StateAwaitingAnswer   State = "awaiting_answer"
	StateRequestingNext   State = "requesting_next"
	StateGeneratingReport State = "generating_report"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Session is one assessment in progress. All mutation goes through
// Store.Update so concurrent HTTP handlers never race on the same session.
type Session struct {
	ID        string                    `json:"id"`
	State     State                     `json:"state"`
	Lead      core.LeadInfo             `json:"lead"`
	History   []core.AnswerHistoryEntry `json:"questionAnswerHistory"`
	Pending   *core.NextQuestion        `json:"pendingQuestion,omitempty"`
	ReportID  string                    `json:"reportId,omitempty"`
	LastError string                    `json:"lastError,omitempty"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// clone copies the session deeply enough that callers can read it without
// holding the store lock.
func (s *Session) clone() *Session {
	cp := *s
	cp.History = append([]core.AnswerHistoryEntry(nil), s.History...)
	if s.Pending != nil {
		p := *s.Pending
		cp.Pending = &p
	}
	return &cp
}

// Store is an in-memory, TTL-bounded session store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store sweeping idle sessions after ttl. A non-positive
// ttl disables sweeping.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

// Create registers a new session for a lead.
func (s *Store) Create(lead core.LeadInfo) *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		State:     StateRequestingNext,
		Lead:      lead,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.clone()
}

// Get returns a copy of the session.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrNotFound("session", id)
	}
	return sess.clone(), nil
}

// Update applies fn to the session under the store lock and returns the
// updated copy. fn returning an error leaves the session untouched.
func (s *Store) Update(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrNotFound("session", id)
	}

	draft := sess.clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = time.Now()
	s.sessions[id] = draft

	return draft.clone(), nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the sweeper.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) sweep() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.Sub(sess.UpdatedAt) > s.ttl {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
