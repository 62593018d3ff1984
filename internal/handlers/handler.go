package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Rishab2245/public-chat-backend/internal/store"
)

// Broadcaster delivers an event to every connected push-channel client.
// The WebSocket hub implements it; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store  store.MessageStore
	hub    Broadcaster
	logger zerolog.Logger
}

// NewHandler creates a new Handler with the given store and broadcaster.
func NewHandler(st store.MessageStore, hub Broadcaster, logger zerolog.Logger) *Handler {
	return &Handler{store: st, hub: hub, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
