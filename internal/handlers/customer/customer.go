// internal/handlers/customer/customer.go
package customer

import (
	"net/http"

	"customer-lookup-service/internal/domain/customer"
	"customer-lookup-service/internal/pkg/response"
	"customer-lookup-service/internal/repository/source"
	"customer-lookup-service/internal/service/assistant"
	"customer-lookup-service/internal/service/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	session        *session.Service
	assistant      *assistant.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewCustomerHandler(sessionService *session.Service, assistantService *assistant.Service, maxUploadBytes int64, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		session:        sessionService,
		assistant:      assistantService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ========== Sources ==========

// LoadFromURL fetches a CSV or workbook from a URL and replaces the dataset
func (h *CustomerHandler) LoadFromURL(c *gin.Context) {
	var req customer.LoadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	info, err := h.session.LoadURL(c.Request.Context(), req.URL)
	if err != nil {
		response.FromError(c, "failed to load data", err)
		return
	}

	response.Success(c, http.StatusOK, "data loaded", info)
}

// Upload ingests a multipart "file" field
func (h *CustomerHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.ValidationError(c, "file is required", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.ValidationError(c, "cannot read uploaded file", err)
		return
	}
	defer f.Close()

	payload, err := source.FromUpload(fh.Filename, fh.Header.Get("Content-Type"), f, h.maxUploadBytes)
	if err != nil {
		response.FromError(c, "failed to read uploaded file", err)
		return
	}

	info, err := h.session.LoadPayload(c.Request.Context(), payload)
	if err != nil {
		response.FromError(c, "failed to load data", err)
		return
	}

	response.Success(c, http.StatusOK, "data loaded", info)
}

// Reset clears the session and forgets the remembered source
func (h *CustomerHandler) Reset(c *gin.Context) {
	if err := h.session.Reset(c.Request.Context()); err != nil {
		response.FromError(c, "failed to reset session", err)
		return
	}

	response.Success(c, http.StatusOK, "session reset", nil)
}

// ========== Health ==========

// Health reports liveness along with which optional features are usable
func (h *CustomerHandler) Health(c *gin.Context) {
	view := h.session.View()
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"version":           "1.0.0",
		"assistant_enabled": h.assistant.Enabled(),
		"dataset_loaded":    view.Dataset != nil,
	})
}

// ========== Session ==========

// GetSession renders the current session view
func (h *CustomerHandler) GetSession(c *gin.Context) {
	response.Success(c, http.StatusOK, "session retrieved", h.session.View())
}

// ListRecords returns the full loaded record set
func (h *CustomerHandler) ListRecords(c *gin.Context) {
	records, err := h.session.Records()
	if err != nil {
		response.FromError(c, "no records", err)
		return
	}

	response.Success(c, http.StatusOK, "records retrieved", records)
}

// Suggest updates the query and returns up to five candidate customers
func (h *CustomerHandler) Suggest(c *gin.Context) {
	suggestions, err := h.session.Query(c.Query("q"))
	if err != nil {
		response.FromError(c, "failed to search", err)
		return
	}

	response.Success(c, http.StatusOK, "suggestions retrieved", suggestions)
}

// Select makes a customer (by phone) the active result set
func (h *CustomerHandler) Select(c *gin.Context) {
	var req customer.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	view, err := h.session.Select(req.Phone)
	if err != nil {
		response.FromError(c, "failed to select customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer selected", view)
}

// SetRecentFilter toggles the three-month window
func (h *CustomerHandler) SetRecentFilter(c *gin.Context) {
	var req customer.RecentFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	response.Success(c, http.StatusOK, "filter updated", h.session.SetRecentOnly(*req.Enabled))
}

// SetPage moves the history to another page; out-of-range pages are ignored
func (h *CustomerHandler) SetPage(c *gin.Context) {
	var req customer.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	response.Success(c, http.StatusOK, "page updated", h.session.SetPage(req.Page))
}

// ========== Assistant ==========

// Ask forwards a question about the selected customer to the assistant
func (h *CustomerHandler) Ask(c *gin.Context) {
	var req customer.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	name, records, err := h.session.ActiveCustomer()
	if err != nil {
		response.FromError(c, "select a customer first", err)
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), name, records, req.Question)
	if err != nil {
		response.FromError(c, "assistant failed", err)
		return
	}

	response.Success(c, http.StatusOK, "answered", customer.AskResponse{Answer: answer})
}
