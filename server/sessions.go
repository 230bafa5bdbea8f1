package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/metrics"
)

var ErrSessionNotFound = errors.New("session not found")

// Session owns the stateful checker behind one page instance.
type Session struct {
	Id       uuid.UUID
	Checker  *checker.Checker
	lastSeen time.Time
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session. newChecker receives the session id so the
// checker can tag what it records.
func (s *SessionStore) Create(newChecker func(id uuid.UUID) *checker.Checker) *Session {
	id := uuid.New()
	sess := &Session{Id: id, Checker: newChecker(id), lastSeen: Now()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	metrics.IncSessionCreated()
	return sess
}

// Get looks up a session and marks it as seen.
func (s *SessionStore) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[uid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = Now()
	return sess, nil
}

func (s *SessionStore) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrSessionNotFound
	}
	s.mu.Lock()
	sess, ok := s.sessions[uid]
	delete(s.sessions, uid)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sess.Checker.Close()
	return nil
}

// EvictExpired closes sessions not seen within the ttl and returns how many were removed.
func (s *SessionStore) EvictExpired() int {
	now := Now()
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Checker.Close()
	}
	if len(expired) > 0 {
		metrics.AddSessionsEvicted(len(expired))
	}
	return len(expired)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Checker.Close()
	}
}
