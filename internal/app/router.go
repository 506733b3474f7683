// internal/app/router.go
package app

import (
	customerHandler "customer-lookup-service/internal/handlers/customer"
	wsHandler "customer-lookup-service/internal/handlers/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	CustomerHandler *customerHandler.CustomerHandler
	WSHandler       *wsHandler.WebSocketHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== WebSocket ====================
	r.GET("/ws/suggestions", h.WSHandler.HandleConnection)

	// ==================== Health Check ====================
	api.GET("/health", h.CustomerHandler.Health)

	// ==================== Sources ====================
	sources := api.Group("/sources")
	{
		sources.POST("/url", h.CustomerHandler.LoadFromURL)
		sources.POST("/upload", h.CustomerHandler.Upload)
		sources.DELETE("", h.CustomerHandler.Reset)
	}

	// ==================== Session ====================
	api.GET("/session", h.CustomerHandler.GetSession)
	api.GET("/records", h.CustomerHandler.ListRecords)
	api.GET("/suggestions", h.CustomerHandler.Suggest)

	selection := api.Group("/selection")
	{
		selection.POST("", h.CustomerHandler.Select)
		selection.PUT("/recent", h.CustomerHandler.SetRecentFilter)
		selection.PUT("/page", h.CustomerHandler.SetPage)
	}

	// ==================== Assistant ====================
	api.POST("/assistant", h.CustomerHandler.Ask)
}
