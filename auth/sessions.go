package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session ties a cookie token to an authenticated user.
type Session struct {
	Token     string
	UserID    uint
	Username  string
	RoleName  string
	ExpiresAt time.Time
}

// SessionStore keeps active sessions in memory. Tokens are random
// uuids handed out as http-only cookies.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	stop     chan struct{}
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create registers a new session and returns its token.
func (s *SessionStore) Create(userID uint, username, roleName string) Session {
	session := Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		Username:  username,
		RoleName:  roleName,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()
	return session
}

// Get resolves a token to its session. Expired sessions are treated as
// absent and removed.
func (s *SessionStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(session.ExpiresAt) {
		s.Delete(token)
		return Session{}, false
	}
	return session, true
}

// Delete removes a session, e.g. on logout.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// StartJanitor sweeps expired sessions on an interval until
// StopJanitor is called.
func (s *SessionStore) StartJanitor(interval time.Duration) {
	s.stop = make(chan struct{})
	stop := s.stop
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-stop:
				return
			}
		}
	}()
}

// StopJanitor ends the sweep goroutine. Safe to call more than once.
func (s *SessionStore) StopJanitor() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *SessionStore) sweep() {
	now := time.Now()
	s.mu.Lock()
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}
