package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rishab2245/public-chat-backend/internal/models"
)

// MemoryStore is the in-process fallback backend used when MongoDB is
// unreachable. Messages live in a slice ordered by insertion, which matches
// timestamp order because timestamps are assigned under the lock.
type MemoryStore struct {
	mu       sync.Mutex
	messages []models.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Close is a no-op; the store holds no external resources.
func (s *MemoryStore) Close() {}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// List returns a copy of all messages in timestamp order.
func (s *MemoryStore) List(_ context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// Create assigns a random UUID, stamps the message, and appends it.
func (s *MemoryStore) Create(_ context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	msg.ID = uuid.NewString()
	msg.Timestamp = now
	msg.CreatedAt = now
	msg.UpdatedAt = nil
	if msg.ConversationID == "" {
		msg.ConversationID = models.DefaultConversation
	}

	s.messages = append(s.messages, *msg)
	return nil
}

// UpdateContent replaces the content of the message with the given ID and
// stamps updatedAt. It reports false when no message matches.
func (s *MemoryStore) UpdateContent(_ context.Context, id, content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			now := time.Now().UTC()
			s.messages[i].Content = content
			s.messages[i].UpdatedAt = &now
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the message with the given ID, reporting false when no
// message matches.
func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
