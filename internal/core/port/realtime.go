package port

import "github.com/the-devesta/khaaonow-delivery/internal/core/domain"

// Event names on the realtime channel, as emitted by the backend and the
// client respectively.
const (
	EventNewDelivery  = "new-delivery-available"
	EventOrderTaken   = "order-taken"
	EventOrderUpdated = "order-updated"

	EmitJoinDeliveryUpdates = "join-delivery-updates"
	EmitJoinOrder           = "join-order"
	EmitUpdateLocation      = "update-location"
)

// Unsubscribe removes a previously registered handler. Callers hold onto
// the handle and invoke it on teardown instead of deregistering by value.
type Unsubscribe func()

// Realtime is the persistent push channel to the backend. Handlers run on
// the channel's read loop in arrival order; payloads are raw JSON.
type Realtime interface {
	On(event string, handler func(payload []byte)) Unsubscribe
	JoinOrder(orderID string)
	SendLocation(orderID string, loc domain.Location, heading float64)
}
