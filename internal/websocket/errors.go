// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrUnknownEvent   = errors.New("no handler for event type")
	ErrInvalidPayload = errors.New("invalid message payload")
	ErrHubClosed      = errors.New("hub is shut down")
)
