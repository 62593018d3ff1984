package ws

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rishab2245/public-chat-backend/internal/metrics"
)

// Hub manages all WebSocket client connections and fans broadcast events out
// to every connected client. Client registration, unregistration, and
// broadcasting all flow through channels consumed by the Run loop.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	logger     zerolog.Logger
}

// NewHub creates a Hub ready to manage connections. Run must be started in
// its own goroutine before clients are registered.
func NewHub(logger zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Broadcast delivers an event to every currently connected client. Each
// client has its own buffered send queue, so one slow client never blocks
// delivery to the others.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := Encode(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("failed to encode broadcast")
		return
	}
	select {
	case h.broadcast <- payload:
		metrics.EventsBroadcast.WithLabelValues(event).Inc()
	case <-h.ctx.Done():
	}
}

// ClientCount reports the number of currently registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run is the hub's event loop. It owns the client set and must be running for
// the lifetime of the service; call it in a dedicated goroutine.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.ConnectedClients.Set(float64(count))
			h.logger.Info().Str("addr", client.addr).Int("clients", count).Msg("client connected")

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				count := len(h.clients)
				h.mu.Unlock()
				client.closeSend()
				metrics.ConnectedClients.Set(float64(count))
				h.logger.Info().Str("addr", client.addr).Int("clients", count).Msg("client disconnected")
			} else {
				h.mu.Unlock()
			}

		case payload := <-h.broadcast:
			h.fanOut(payload)
		}
	}
}

// fanOut queues the payload on every client. Clients whose send buffer is
// full are dropped from the hub.
func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	var stalled []*Client
	for _, client := range clients {
		if !client.queue(payload) {
			stalled = append(stalled, client)
		}
	}
	h.dropClients(stalled)
}

func (h *Hub) dropClients(stalled []*Client) {
	if len(stalled) == 0 {
		return
	}

	h.mu.Lock()
	var dropped []*Client
	for _, client := range stalled {
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			dropped = append(dropped, client)
			h.logger.Warn().Str("addr", client.addr).Msg("client dropped: send buffer full")
		}
	}
	count := len(h.clients)
	h.mu.Unlock()

	for _, client := range dropped {
		client.closeSend()
	}
	metrics.ConnectedClients.Set(float64(count))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.closeSend()
		_ = client.conn.Close()
	}
}

// Shutdown stops the hub, closes all connections, and waits for the pump
// goroutines to finish or the timeout to elapse.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}
