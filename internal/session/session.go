// Package session manages per-user conversation history with a durable
// sqlite backend for persistent sessions and a volatile in-memory backend
// for temporary ones.
package session

import (
	"sync"

	"github.com/fieldlens/concierge/domain"
)

// Session is one conversation's append-only turn log.
type Session interface {
	Key() domain.SessionKey
	Append(turn domain.SessionTurn) error
	Turns() ([]domain.SessionTurn, error)
	ClearTurns() error
	Close() error
}

// MemorySession keeps turns in process memory. Used for temporary
// sessions and as the test double for the manager.
type MemorySession struct {
	key domain.SessionKey

	mu    sync.Mutex
	turns []domain.SessionTurn
}

var _ Session = (*MemorySession)(nil)

func NewMemorySession(key domain.SessionKey) *MemorySession {
	return &MemorySession{key: key}
}

func (s *MemorySession) Key() domain.SessionKey { return s.key }

func (s *MemorySession) Append(turn domain.SessionTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	return nil
}

func (s *MemorySession) Turns() ([]domain.SessionTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SessionTurn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (s *MemorySession) ClearTurns() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
	return nil
}

func (s *MemorySession) Close() error { return nil }
