// internal/websocket/hub.go
package websocket

import (
	"context"
	"fmt"
	"sync"

	"customer-lookup-service/internal/domain/customer"
	wstypes "customer-lookup-service/internal/domain/websocket"

	"go.uber.org/zap"
)

const broadcastBuffer = 256

// Hub tracks live connections, routes their messages to registered handlers
// and fans dataset changes out to every client.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *wstypes.WSMessage
	done       chan struct{}

	handlerRegistry *HandlerRegistry
	logger          *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[*Client]bool),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *wstypes.WSMessage, broadcastBuffer),
		done:            make(chan struct{}),
		handlerRegistry: NewHandlerRegistry(),
		logger:          logger,
	}
}

// RegisterHandler registers a message handler. Call it before Run.
func (h *Hub) RegisterHandler(handler MessageHandler) {
	h.handlerRegistry.Register(handler)
}

// HandleClientMessage processes a message from a client using registered handlers
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) error {
	handler, exists := h.handlerRegistry.GetHandler(msg.Type)
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, msg.Type)
	}
	return handler.HandleMessage(ctx, client, msg)
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.BroadcastMessage(msg)
		}
	}
}

// Register adds client to the hub. It fails once the hub has stopped.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Debug("websocket client registered", zap.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()
		h.logger.Debug("websocket client unregistered", zap.Int("total", len(h.clients)))
	}
}

// BroadcastMessage sends msg to every connected client.
func (h *Hub) BroadcastMessage(msg *wstypes.WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.SendMessage(msg)
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// DatasetChanged queues a dataset event for every client; info is nil after a reset.
func (h *Hub) DatasetChanged(info *customer.DatasetInfo) {
	msg := wstypes.NewMessage(wstypes.EventTypeDataset, info)
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping dataset event")
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*Client]bool)
}
