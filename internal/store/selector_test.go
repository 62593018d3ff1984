package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Rishab2245/public-chat-backend/internal/models"
)

// stubStore records which store answered an operation.
type stubStore struct {
	MemoryStore
	created int
}

func (s *stubStore) Create(ctx context.Context, msg *models.Message) error {
	s.created++
	return s.MemoryStore.Create(ctx, msg)
}

func awaitReady(t *testing.T, sel *Selector) {
	t.Helper()
	select {
	case <-sel.Ready():
	case <-time.After(time.Second):
		t.Fatal("selector did not resolve")
	}
}

func TestSelectorPendingRoutesToFallback(t *testing.T) {
	req := require.New(t)
	fallback := NewMemoryStore()
	sel := NewSelector(fallback, zerolog.Nop())

	req.Equal(BackendPending, sel.Backend())

	msg := models.Message{SenderID: "u1", Content: "hi"}
	req.NoError(sel.Create(context.Background(), &msg))

	stored, err := fallback.List(context.Background())
	req.NoError(err)
	req.Len(stored, 1)
}

func TestSelectorPinsFallbackOnConnectFailure(t *testing.T) {
	req := require.New(t)
	fallback := NewMemoryStore()
	sel := NewSelector(fallback, zerolog.Nop())

	sel.Resolve(context.Background(), func(ctx context.Context) (MessageStore, error) {
		return nil, errors.New("connection refused")
	})
	awaitReady(t, sel)

	req.Equal(BackendFallback, sel.Backend())

	msg := models.Message{SenderID: "u1", Content: "hi"}
	req.NoError(sel.Create(context.Background(), &msg))

	stored, err := fallback.List(context.Background())
	req.NoError(err)
	req.Len(stored, 1)
}

func TestSelectorSwitchesToDurableOnConnectSuccess(t *testing.T) {
	req := require.New(t)
	fallback := NewMemoryStore()
	durable := &stubStore{}
	sel := NewSelector(fallback, zerolog.Nop())

	sel.Resolve(context.Background(), func(ctx context.Context) (MessageStore, error) {
		return durable, nil
	})
	awaitReady(t, sel)

	req.Equal(BackendDurable, sel.Backend())

	msg := models.Message{SenderID: "u1", Content: "hi"}
	req.NoError(sel.Create(context.Background(), &msg))
	req.Equal(1, durable.created)

	// Nothing was written to the fallback.
	stored, err := fallback.List(context.Background())
	req.NoError(err)
	req.Empty(stored)
}

func TestBackendString(t *testing.T) {
	req := require.New(t)
	req.Equal("pending", BackendPending.String())
	req.Equal("mongodb", BackendDurable.String())
	req.Equal("memory", BackendFallback.String())
}
