package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rishab2245/public-chat-backend/internal/models"
)

// Backend identifies which storage backend a Selector is routing to.
type Backend int

const (
	// BackendPending means the durable connection attempt has not resolved
	// yet. Operations route to the fallback store until it does.
	BackendPending Backend = iota
	// BackendDurable routes all operations to MongoDB.
	BackendDurable
	// BackendFallback routes all operations to the in-memory store, pinned
	// for the remainder of the process lifetime.
	BackendFallback
)

func (b Backend) String() string {
	switch b {
	case BackendDurable:
		return "mongodb"
	case BackendFallback:
		return "memory"
	default:
		return "pending"
	}
}

// ConnectFunc attempts to establish the durable backend connection.
type ConnectFunc func(ctx context.Context) (MessageStore, error)

// Selector routes message operations to exactly one backend, resolved once.
// It starts in the Pending state, behaving as the fallback store, and switches
// permanently to the durable store when the asynchronous connection attempt
// succeeds — or pins the fallback when it fails. There is no retry and no
// reconnection.
type Selector struct {
	mu       sync.RWMutex
	backend  Backend
	durable  MessageStore
	fallback *MemoryStore
	ready    chan struct{}
	logger   zerolog.Logger
}

// NewSelector creates a Selector in the Pending state over the given fallback.
func NewSelector(fallback *MemoryStore, logger zerolog.Logger) *Selector {
	return &Selector{
		backend:  BackendPending,
		fallback: fallback,
		ready:    make(chan struct{}),
		logger:   logger,
	}
}

// Resolve launches the durable connection attempt in the background. The
// endpoint layers may serve requests before it finishes; until then every
// operation is answered by the fallback store.
func (s *Selector) Resolve(ctx context.Context, connect ConnectFunc) {
	go func() {
		durable, err := connect(ctx)
		s.mu.Lock()
		if err != nil {
			s.backend = BackendFallback
			s.mu.Unlock()
			s.logger.Warn().Err(err).Msg("mongodb connection failed, using in-memory storage")
			close(s.ready)
			return
		}
		s.backend = BackendDurable
		s.durable = durable
		s.mu.Unlock()
		s.logger.Info().Msg("connected to mongodb")
		close(s.ready)
	}()
}

// Ready returns a channel closed once the backend selection has resolved,
// whichever way it went. Callers that want the startup window closed before
// declaring readiness can wait on it.
func (s *Selector) Ready() <-chan struct{} {
	return s.ready
}

// Backend reports the currently selected backend.
func (s *Selector) Backend() Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend
}

// current returns the store operations are routed to right now. Pending is
// treated identically to Fallback.
func (s *Selector) current() MessageStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == BackendDurable {
		return s.durable
	}
	return s.fallback
}

// Close releases the durable connection when one was established.
func (s *Selector) Close() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.durable != nil {
		s.durable.Close()
	}
}

// Ping checks the active backend.
func (s *Selector) Ping(ctx context.Context) error {
	return s.current().Ping(ctx)
}

// List returns all messages from the active backend in timestamp order.
func (s *Selector) List(ctx context.Context) ([]models.Message, error) {
	return s.current().List(ctx)
}

// Create persists the message in the active backend.
func (s *Selector) Create(ctx context.Context, msg *models.Message) error {
	return s.current().Create(ctx, msg)
}

// UpdateContent updates a message in the active backend.
func (s *Selector) UpdateContent(ctx context.Context, id, content string) (bool, error) {
	return s.current().UpdateContent(ctx, id, content)
}

// Delete removes a message from the active backend.
func (s *Selector) Delete(ctx context.Context, id string) (bool, error) {
	return s.current().Delete(ctx, id)
}
