package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jinwoohan/insuragraph/internal/domain"
)

// Session is one interactive conversation about one product. History lives
// only in memory for the lifetime of the process; nothing is written to disk.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	ProductID string        `json:"product_id"`
	CreatedAt time.Time     `json:"created_at"`
	Turns     []domain.Turn `json:"turns"`
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{sessions: map[uuid.UUID]*Session{}}
}

func (s *Store) Create(productID string) Session {
	sess := &Session{
		ID:        uuid.New(),
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return *sess
}

func (s *Store) Get(id uuid.UUID) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %s not found", id)
	}
	return snapshot(sess), nil
}

func (s *Store) Append(id uuid.UUID, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	sess.Turns = append(sess.Turns, turn)
	return nil
}

// snapshot copies the session so callers cannot mutate stored history.
func snapshot(sess *Session) Session {
	out := *sess
	out.Turns = append([]domain.Turn(nil), sess.Turns...)
	return out
}
