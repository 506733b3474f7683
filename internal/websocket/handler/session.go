// internal/websocket/handler/session.go
package handlers

import (
	"context"
	"errors"
	"fmt"

	wstypes "customer-lookup-service/internal/domain/websocket"
	xerrors "customer-lookup-service/internal/pkg/errors"
	"customer-lookup-service/internal/service/session"
	ws "customer-lookup-service/internal/websocket"
)

// SessionHandler answers keystroke queries and selections over the socket.
type SessionHandler struct {
	session *session.Service
}

func NewSessionHandler(sessionService *session.Service) *SessionHandler {
	return &SessionHandler{session: sessionService}
}

// SupportedEvents returns events this handler supports
func (h *SessionHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{
		wstypes.EventTypeQuery,
		wstypes.EventTypeSelect,
	}
}

// HandleMessage processes session-related messages
func (h *SessionHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeQuery:
		return h.handleQuery(client, msg)

	case wstypes.EventTypeSelect:
		return h.handleSelect(client, msg)

	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}

// handleQuery stores the typed text and replies with its suggestions
func (h *SessionHandler) handleQuery(client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.QueryRequest
	if err := ws.DecodeData(msg.Data, &req); err != nil {
		client.SendError("invalid_query", "Invalid query request", err.Error())
		return err
	}

	suggestions, err := h.session.Query(req.Query)
	if err != nil {
		client.SendError(errorCode(err), "Failed to search", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeSuggestions, suggestions))
	return nil
}

// handleSelect makes the chosen phone active and replies with the session view
func (h *SessionHandler) handleSelect(client *ws.Client, msg *wstypes.WSMessage) error {
	var req wstypes.SelectRequest
	if err := ws.DecodeData(msg.Data, &req); err != nil || req.Phone == "" {
		client.SendError("invalid_select", "Invalid select request", "phone is required")
		return ws.ErrInvalidPayload
	}

	view, err := h.session.Select(req.Phone)
	if err != nil {
		client.SendError(errorCode(err), "Failed to select customer", err.Error())
		return err
	}

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeSession, view))
	return nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, xerrors.ErrNoDataset):
		return "no_dataset"
	default:
		return "internal"
	}
}
