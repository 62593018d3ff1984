package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rishab2245/public-chat-backend/internal/metrics"
	"github.com/Rishab2245/public-chat-backend/internal/models"
	"github.com/Rishab2245/public-chat-backend/internal/ws"
)

// CreateMessageRequest represents the message creation request.
type CreateMessageRequest struct {
	SenderID       string `json:"senderId"`
	Content        string `json:"content"`
	ConversationID string `json:"conversationId,omitempty"`
}

// UpdateMessageRequest represents the message update request.
type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// AckResponse represents a success acknowledgment.
type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListMessages handles GET /api/messages.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list messages")
		h.Error(w, http.StatusInternalServerError, "failed to fetch messages")
		return
	}
	h.JSON(w, http.StatusOK, messages)
}

// CreateMessage handles POST /api/messages. On success the stored message is
// broadcast to every connected WebSocket client as a newMessage event.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.SenderID == "" || req.Content == "" {
		h.Error(w, http.StatusBadRequest, "senderId and content are required")
		return
	}

	msg := models.Message{
		SenderID:       req.SenderID,
		Content:        req.Content,
		ConversationID: req.ConversationID,
	}
	if err := h.store.Create(r.Context(), &msg); err != nil {
		h.logger.Error().Err(err).Msg("failed to store message")
		h.Error(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	metrics.MessagesCreated.WithLabelValues("rest").Inc()
	h.hub.Broadcast(ws.EventNewMessage, msg)
	h.JSON(w, http.StatusCreated, msg)
}

// UpdateMessage handles PUT /api/messages/{id}.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Content == "" {
		h.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	found, err := h.store.UpdateContent(r.Context(), id, req.Content)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("failed to update message")
		h.Error(w, http.StatusInternalServerError, "failed to update message")
		return
	}
	if !found {
		h.Error(w, http.StatusNotFound, "message not found")
		return
	}

	metrics.MessagesUpdated.WithLabelValues("rest").Inc()
	h.hub.Broadcast(ws.EventMessageUpdated, ws.MessageUpdatedPayload{ID: id, Content: req.Content})
	h.JSON(w, http.StatusOK, AckResponse{Success: true, Message: "message updated"})
}

// DeleteMessage handles DELETE /api/messages/{id}.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("failed to delete message")
		h.Error(w, http.StatusInternalServerError, "failed to delete message")
		return
	}
	if !found {
		h.Error(w, http.StatusNotFound, "message not found")
		return
	}

	metrics.MessagesDeleted.WithLabelValues("rest").Inc()
	h.hub.Broadcast(ws.EventMessageDeleted, ws.MessageDeletedPayload{ID: id})
	h.JSON(w, http.StatusOK, AckResponse{Success: true, Message: "message deleted"})
}
