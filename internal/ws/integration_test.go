package ws_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Rishab2245/public-chat-backend/internal/api"
	"github.com/Rishab2245/public-chat-backend/internal/config"
	"github.com/Rishab2245/public-chat-backend/internal/handlers"
	"github.com/Rishab2245/public-chat-backend/internal/models"
	"github.com/Rishab2245/public-chat-backend/internal/store"
	"github.com/Rishab2245/public-chat-backend/internal/ws"
)

// newFullServer wires the real router, hub, and in-memory store together the
// way cmd/server does, so REST writes and WebSocket delivery are tested
// end to end.
func newFullServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		CORSOrigins: []string{"*"},
		CORSMethods: []string{"GET", "POST"},
	}
	st := store.NewMemoryStore()
	hub := ws.NewHub(zerolog.Nop())
	go hub.Run()
	t.Cleanup(func() {
		require.NoError(t, hub.Shutdown(time.Second))
	})

	h := handlers.NewHandler(st, hub, zerolog.Nop())
	router := api.NewRouter(cfg, zerolog.Nop(), h, ws.Handler(hub, st, zerolog.Nop()))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRESTCreateIsObservedByConnectedListener(t *testing.T) {
	req := require.New(t)
	srv := newFullServer(t)

	listener := connect(t, wsURL(srv)+"/ws")

	body, err := json.Marshal(map[string]string{"senderId": "u1", "content": "hi"})
	req.NoError(err)
	resp, err := http.Post(srv.URL+"/api/messages", "application/json", bytes.NewReader(body))
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusCreated, resp.StatusCode)

	var created models.Message
	req.NoError(json.NewDecoder(resp.Body).Decode(&created))

	env := readEnvelope(t, listener)
	req.Equal(ws.EventNewMessage, env.Event)

	var broadcast models.Message
	req.NoError(json.Unmarshal(env.Data, &broadcast))
	req.Equal(created.ID, broadcast.ID)
	req.Equal("u1", broadcast.SenderID)
	req.Equal("hi", broadcast.Content)
	req.Equal("general", broadcast.ConversationID)
}

func TestRESTUpdateAndDeleteAreObservedByConnectedListener(t *testing.T) {
	req := require.New(t)
	srv := newFullServer(t)

	body, _ := json.Marshal(map[string]string{"senderId": "u1", "content": "hi"})
	resp, err := http.Post(srv.URL+"/api/messages", "application/json", bytes.NewReader(body))
	req.NoError(err)
	var created models.Message
	req.NoError(json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	listener := connect(t, wsURL(srv)+"/ws")

	update, _ := json.Marshal(map[string]string{"content": "hello"})
	putReq, err := http.NewRequest(http.MethodPut, srv.URL+"/api/messages/"+created.ID, bytes.NewReader(update))
	req.NoError(err)
	putReq.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(putReq)
	req.NoError(err)
	putResp.Body.Close()
	req.Equal(http.StatusOK, putResp.StatusCode)

	env := readEnvelope(t, listener)
	req.Equal(ws.EventMessageUpdated, env.Event)

	var updated ws.MessageUpdatedPayload
	req.NoError(json.Unmarshal(env.Data, &updated))
	req.Equal(created.ID, updated.ID)
	req.Equal("hello", updated.Content)

	delReq, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/messages/"+created.ID, nil)
	req.NoError(err)
	delResp, err := http.DefaultClient.Do(delReq)
	req.NoError(err)
	delResp.Body.Close()
	req.Equal(http.StatusOK, delResp.StatusCode)

	env = readEnvelope(t, listener)
	req.Equal(ws.EventMessageDeleted, env.Event)

	var deleted ws.MessageDeletedPayload
	req.NoError(json.Unmarshal(env.Data, &deleted))
	req.Equal(created.ID, deleted.ID)
}
