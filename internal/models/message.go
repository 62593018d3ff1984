package models

import "time"

// DefaultConversation is assigned when a message is created without an
// explicit conversation.
const DefaultConversation = "general"

// Message represents a chat message. The ID is assigned by whichever storage
// backend is active: a Mongo ObjectID hex string, or a random UUID from the
// in-memory fallback.
type Message struct {
	ID             string     `json:"id"`
	SenderID       string     `json:"senderId"`
	Content        string     `json:"content"`
	ConversationID string     `json:"conversationId"`
	Timestamp      time.Time  `json:"timestamp"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}
