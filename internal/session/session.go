// Package session tracks conversation state across agent turns.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/llm"
)

// Session is one conversation between a user and an agent.
type Session struct {
	ID        string
	AppName   string
	UserID    string
	Messages  []llm.Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store creates and retrieves sessions.
type Store interface {
	// Create starts a new session for the given app and user.
	Create(appName, userID string) (*Session, error)

	// Get returns the session with the given ID.
	Get(id string) (*Session, error)

	// Append adds messages to a session's history.
	Append(id string, msgs ...llm.Message) error

	// List returns every session for a user, newest first.
	List(userID string) ([]*Session, error)
}

// MemoryStore keeps sessions in process memory. Sessions do not survive
// a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Create(appName, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		AppName:   appName,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess
	return sess.clone(), nil
}

func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "session %q", id)
	}
	return sess.clone(), nil
}

func (s *MemoryStore) Append(id string, msgs ...llm.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "session %q", id)
	}
	sess.Messages = append(sess.Messages, msgs...)
	sess.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) List(userID string) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// clone copies a session so callers cannot mutate store state.
func (s *Session) clone() *Session {
	c := *s
	c.Messages = make([]llm.Message, len(s.Messages))
	copy(c.Messages, s.Messages)
	return &c
}
