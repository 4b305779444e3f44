package domain

import "time"

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusAccepted       OrderStatus = "accepted"
	StatusPickedUp       OrderStatus = "picked_up"
	StatusOnTheWay       OrderStatus = "on_the_way"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
)

// Terminal reports whether the status closes the order. Terminal orders
// belong in history, never in the pending or active slots.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentOnline PaymentType = "online"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order is the canonical rider-side view of one delivery task. Every Order
// held in memory was produced by OrderPayload.Normalize; code must not
// assemble partial records by hand.
type Order struct {
	ID                string      `json:"id"`
	RestaurantName    string      `json:"restaurantName"`
	RestaurantAddress string      `json:"restaurantAddress"`
	CustomerName      string      `json:"customerName"`
	CustomerAddress   string      `json:"customerAddress"`
	CustomerPhone     string      `json:"customerPhone"`
	DistanceKm        float64     `json:"distance"`
	EstimatedTime     string      `json:"estimatedTime"`
	Earnings          float64     `json:"earnings"`
	Items             []LineItem  `json:"items"`
	PaymentType       PaymentType `json:"paymentType"`
	Status            OrderStatus `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	PickupLocation    *Location   `json:"pickupLocation,omitempty"`
	DropLocation      *Location   `json:"dropLocation,omitempty"`
}

// CurrentTarget returns where the rider should be heading for this order:
// the restaurant until the food is picked up, the customer afterwards.
func (o *Order) CurrentTarget() *Location {
	switch o.Status {
	case StatusAccepted, StatusConfirmed, StatusPreparing, StatusReady:
		return o.PickupLocation
	default:
		return o.DropLocation
	}
}
