// internal/handlers/websocket/websocket.go
package handlers

import (
	"net/http"

	wstypes "customer-lookup-service/internal/domain/websocket"
	"customer-lookup-service/internal/service/session"
	ws "customer-lookup-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	session  *session.Service
	logger   *zap.Logger
}

// NewWebSocketHandler accepts connections from the given origins; "*" accepts any.
func NewWebSocketHandler(hub *ws.Hub, sessionService *session.Service, origins []string, logger *zap.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		session: sessionService,
		logger:  logger,
	}
}

// HandleConnection upgrades the request, greets the client with the current
// session view and serves it until it disconnects
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, h.logger)
	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, h.session.View()))

	h.logger.Info("WebSocket client connected", zap.String("ip", c.ClientIP()))
	if err := client.Run(); err != nil {
		h.logger.Warn("WebSocket client rejected", zap.Error(err))
		return
	}
	h.logger.Info("WebSocket client disconnected", zap.String("ip", c.ClientIP()))
}
