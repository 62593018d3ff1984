// Package ws implements the WebSocket push channel: a hub that fans events
// out to every connected client, and per-connection read/write pumps that
// mirror the REST message operations.
package ws

import "encoding/json"

// Inbound event names.
const (
	EventSendMessage   = "sendMessage"
	EventUpdateMessage = "updateMessage"
	EventDeleteMessage = "deleteMessage"
)

// Outbound event names.
const (
	EventExistingMessages = "existingMessages"
	EventNewMessage       = "newMessage"
	EventMessageUpdated   = "messageUpdated"
	EventMessageDeleted   = "messageDeleted"
	EventError            = "error"
)

// Envelope is the wire format in both directions: an event name plus its
// JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an event envelope for the wire.
func Encode(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// SendMessagePayload is the inbound sendMessage payload.
type SendMessagePayload struct {
	SenderID       string `json:"senderId"`
	Content        string `json:"content"`
	ConversationID string `json:"conversationId,omitempty"`
}

// UpdateMessagePayload is the inbound updateMessage payload.
type UpdateMessagePayload struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// DeleteMessagePayload is the inbound deleteMessage payload.
type DeleteMessagePayload struct {
	ID string `json:"id"`
}

// MessageUpdatedPayload is broadcast after a successful update.
type MessageUpdatedPayload struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// MessageDeletedPayload is broadcast after a successful delete.
type MessageDeletedPayload struct {
	ID string `json:"id"`
}

// ErrorPayload is sent to the originating connection only.
type ErrorPayload struct {
	Message string `json:"message"`
}
