package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Rishab2245/public-chat-backend/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// All origins are accepted, matching the service's CORS policy.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler returns the HTTP handler that upgrades connections and hands them
// to the hub. Each new client immediately receives the current message list
// as an existingMessages event.
func Handler(hub *Hub, st store.MessageStore, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		client := NewClient(conn, hub, st, logger, r.RemoteAddr)
		select {
		case hub.register <- client:
		case <-hub.ctx.Done():
			_ = conn.Close()
			return
		}
		go client.sendInitialMessages()
	}
}
