package types

import "encoding/json"

// ApiResponse is the envelope for responses the server produces itself.
// Relayed provider bodies are written verbatim and never wrapped.
type ApiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Balance json.RawMessage `json:"balance,omitempty"`
	Data    interface{}     `json:"data,omitempty"`
}

// SetKeyRequest is the body of POST /api/set-key.
type SetKeyRequest struct {
	APIKey string `json:"apiKey"`
}
