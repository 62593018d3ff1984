package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Rishab2245/public-chat-backend/internal/store"
)

const version = "1.0.0"

// Check represents the status of a health check.
type Check struct {
	Status  string `json:"status"`            // "pass" or "fail"
	Backend string `json:"backend,omitempty"` // active storage backend
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string           `json:"status"` // "healthy" or "degraded"
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Timestamp string           `json:"timestamp"`
}

// Health handles the health check endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	check := Check{Status: "pass"}
	if sel, ok := h.store.(*store.Selector); ok {
		check.Backend = sel.Backend().String()
	}

	start := time.Now()
	status := "healthy"
	statusCode := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		check.Status = "fail"
		check.Message = "storage unreachable"
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	} else {
		check.Latency = time.Since(start).String()
	}

	h.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Version:   version,
		Checks:    map[string]Check{"storage": check},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// RootResponse represents the root endpoint response.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Root handles the root endpoint.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, RootResponse{Name: "public-chat-backend", Version: version})
}
