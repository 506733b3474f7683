package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"customer-lookup-service/internal/domain/customer"
	wstypes "customer-lookup-service/internal/domain/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoHandler struct{}

func (echoHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{wstypes.EventTypeQuery}
}

func (echoHandler) HandleMessage(_ context.Context, client *Client, msg *wstypes.WSMessage) error {
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeSuggestions, msg.Data))
	return nil
}

func nextMessage(t *testing.T, c *Client) wstypes.WSMessage {
	t.Helper()
	select {
	case data := <-c.send:
		var msg wstypes.WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message queued")
		return wstypes.WSMessage{}
	}
}

func TestHub_RoutesAndBroadcasts(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.RegisterHandler(echoHandler{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a := NewClient(hub, nil, zap.NewNop())
	b := NewClient(hub, nil, zap.NewNop())
	require.NoError(t, hub.Register(a))
	require.NoError(t, hub.Register(b))

	a.handleMessage([]byte(`{"type":"query","data":{"query":"som"}}`))
	assert.Equal(t, wstypes.EventTypeSuggestions, nextMessage(t, a).Type)

	a.handleMessage([]byte(`{"type":"nope"}`))
	msg := nextMessage(t, a)
	assert.Equal(t, wstypes.EventTypeError, msg.Type)

	a.handleMessage([]byte(`not json`))
	assert.Equal(t, wstypes.EventTypeError, nextMessage(t, a).Type)

	hub.DatasetChanged(&customer.DatasetInfo{LoadID: "x", RecordCount: 3})
	assert.Equal(t, wstypes.EventTypeDataset, nextMessage(t, a).Type)
	assert.Equal(t, wstypes.EventTypeDataset, nextMessage(t, b).Type)

	hub.Unregister(b)
	assert.Eventually(t, func() bool { return hub.TotalClients() == 1 }, time.Second, 10*time.Millisecond)
	assert.Error(t, b.ctx.Err(), "unregistered clients are closed")
}

func TestHub_UnknownEventAndShutdown(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	err := hub.HandleClientMessage(ctx, nil, &wstypes.WSMessage{Type: wstypes.EventTypeSelect})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	c := NewClient(hub, nil, zap.NewNop())
	require.NoError(t, hub.Register(c))

	cancel()
	<-done

	assert.Error(t, c.ctx.Err())
	assert.ErrorIs(t, hub.Register(NewClient(hub, nil, zap.NewNop())), ErrHubClosed)
	hub.DatasetChanged(nil)
}
