package store

import (
	"context"

	"github.com/Rishab2245/public-chat-backend/internal/models"
)

// MessageStore defines the interface for message persistence.
// Both MongoStore and MemoryStore implement this interface.
type MessageStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Message operations
	List(ctx context.Context) ([]models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
	UpdateContent(ctx context.Context, id, content string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
