package session

import (
	"sync"
	"time"
)

// Session is the explicit session-context object shared by the controllers:
// it holds the connected wallet address and nothing else. It is created on
// connect and torn down on disconnect; nothing survives a process restart.
type Session struct {
	Address     string    `json:"address"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Store holds the single active wallet session. Connecting replaces any
// previous session; disconnecting only clears local state, there is no
// revocation side effect on the wallet.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Connect(address string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{
		Address:     address,
		ConnectedAt: time.Now(),
	}
	return *s.current
}

func (s *Store) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Address returns the connected wallet address or an empty string.
func (s *Store) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Address
}
