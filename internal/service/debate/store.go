package debate

import (
	"context"
	"sync"

	"github.com/zhouzirui/debate-arena/backend/internal/model/debate"
)

// Store persists debate sessions for the lifecycle manager.
type Store interface {
	Create(ctx context.Context, session debate.Session) error
	Get(ctx context.Context, id string) (debate.Session, error)
	AppendTurns(ctx context.Context, id string, turns ...debate.Turn) error
	Count() int
}

// MemoryStore keeps sessions in process memory. Sessions are never evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*debate.Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*debate.Session)}
}

// Create inserts a new session. Ids must be unique for the store lifetime.
func (s *MemoryStore) Create(ctx context.Context, session debate.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := session.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return ErrSessionExists
	}
	s.sessions[session.ID] = &stored
	return nil
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(ctx context.Context, id string) (debate.Session, error) {
	if err := ctx.Err(); err != nil {
		return debate.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return debate.Session{}, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// AppendTurns adds turns to the end of the session history atomically.
func (s *MemoryStore) AppendTurns(ctx context.Context, id string, turns ...debate.Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Turns = append(session.Turns, turns...)
	return nil
}

// Count reports how many sessions are held.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
