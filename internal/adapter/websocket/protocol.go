package websocket

import (
	"encoding/json"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type JoinOrderPayload struct {
	OrderID string `json:"orderId"`
}

type LocationUpdatePayload struct {
	OrderID  string          `json:"orderId"`
	Location domain.Location `json:"location"`
	Heading  float64         `json:"heading"`
}
