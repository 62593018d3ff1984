package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Rishab2245/public-chat-backend/internal/metrics"
	"github.com/Rishab2245/public-chat-backend/internal/models"
	"github.com/Rishab2245/public-chat-backend/internal/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client represents one WebSocket connection. Outgoing events are queued on
// the buffered send channel and drained by writePump; inbound events are
// dispatched by readPump against the message store.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	store  store.MessageStore
	logger zerolog.Logger
	addr   string

	// sendMu guards closed and the close of send, so queueing never races
	// with the hub shutting the channel.
	sendMu sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn, hub *Hub, st store.MessageStore, logger zerolog.Logger, addr string) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		hub:    hub,
		store:  st,
		logger: logger,
		addr:   addr,
	}
}

// sendInitialMessages pushes the full message list to this client only. It
// runs concurrently with any in-flight broadcasts; no ordering between the
// initial sync and concurrent writes is guaranteed.
func (c *Client) sendInitialMessages() {
	messages, err := c.store.List(context.Background())
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load messages for initial sync")
		c.sendError("Failed to load messages")
		return
	}
	c.sendEvent(EventExistingMessages, messages)
}

// queue places a payload on the send buffer without blocking. It reports
// false when the client is closed or its buffer is full.
func (c *Client) queue(payload []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// closeSend marks the client closed and shuts its send channel. Safe to call
// more than once.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// sendEvent queues an event on this connection only.
func (c *Client) sendEvent(event string, data interface{}) {
	payload, err := Encode(event, data)
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("failed to encode event")
		return
	}
	// A full buffer is not an error here; the hub drops stalled clients on
	// its next broadcast.
	c.queue(payload)
}

func (c *Client) sendError(message string) {
	c.sendEvent(EventError, ErrorPayload{Message: message})
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Str("addr", c.addr).Msg("websocket read error")
			}
			return
		}
		c.dispatch(raw)
	}
}

// dispatch routes one inbound envelope. Validation failures and unknown ids
// produce an error event on this connection only; successful writes broadcast
// to every connected client, the sender included.
func (c *Client) dispatch(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendError("Invalid message format")
		return
	}

	switch env.Event {
	case EventSendMessage:
		c.handleSend(env.Data)
	case EventUpdateMessage:
		c.handleUpdate(env.Data)
	case EventDeleteMessage:
		c.handleDelete(env.Data)
	default:
		c.sendError("Unknown event: " + env.Event)
	}
}

func (c *Client) handleSend(data json.RawMessage) {
	var p SendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("Invalid sendMessage payload")
		return
	}
	if p.SenderID == "" || p.Content == "" {
		c.sendError("senderId and content are required")
		return
	}

	msg := models.Message{
		SenderID:       p.SenderID,
		Content:        p.Content,
		ConversationID: p.ConversationID,
	}
	if err := c.store.Create(context.Background(), &msg); err != nil {
		c.logger.Error().Err(err).Msg("failed to store message")
		c.sendError("Failed to send message")
		return
	}
	metrics.MessagesCreated.WithLabelValues("ws").Inc()
	c.hub.Broadcast(EventNewMessage, msg)
}

func (c *Client) handleUpdate(data json.RawMessage) {
	var p UpdateMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("Invalid updateMessage payload")
		return
	}
	if p.ID == "" || p.Content == "" {
		c.sendError("id and content are required")
		return
	}

	found, err := c.store.UpdateContent(context.Background(), p.ID, p.Content)
	if err != nil {
		c.logger.Error().Err(err).Str("id", p.ID).Msg("failed to update message")
		c.sendError("Failed to update message")
		return
	}
	if !found {
		c.sendError("Message not found")
		return
	}
	metrics.MessagesUpdated.WithLabelValues("ws").Inc()
	c.hub.Broadcast(EventMessageUpdated, MessageUpdatedPayload{ID: p.ID, Content: p.Content})
}

func (c *Client) handleDelete(data json.RawMessage) {
	var p DeleteMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError("Invalid deleteMessage payload")
		return
	}
	if p.ID == "" {
		c.sendError("id is required")
		return
	}

	found, err := c.store.Delete(context.Background(), p.ID)
	if err != nil {
		c.logger.Error().Err(err).Str("id", p.ID).Msg("failed to delete message")
		c.sendError("Failed to delete message")
		return
	}
	if !found {
		c.sendError("Message not found")
		return
	}
	metrics.MessagesDeleted.WithLabelValues("ws").Inc()
	c.hub.Broadcast(EventMessageDeleted, MessageDeletedPayload{ID: p.ID})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
