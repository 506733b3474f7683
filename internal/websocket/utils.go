// internal/websocket/utils.go
package websocket

import (
	"encoding/json"
	"fmt"
)

// DecodeData converts a generic message payload into target using JSON marshaling
func DecodeData(data interface{}, target interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(jsonData, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
