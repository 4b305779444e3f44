package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Numeric is a float64 that tolerates sloppy backend encodings: JSON
// numbers, numeric strings, null, or garbage all decode, with anything
// non-numeric collapsing to zero.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Numeric(f)
	return nil
}

// OrderPayload is the loosely-typed order record the backend sends. Field
// names differ between the realtime push, the list endpoints and the
// history endpoint, so most of it is optional and several concepts appear
// twice (embedded document vs populated reference).
type OrderPayload struct {
	MongoID        string          `json:"_id"`
	ID             string          `json:"id"`
	Restaurant     *RestaurantInfo `json:"restaurant"`
	RestaurantRef  *RestaurantInfo `json:"restaurantId"`
	RestaurantAddr *AddressInfo    `json:"restaurantAddress"`
	User           *UserInfo       `json:"user"`
	UserRef        *UserInfo       `json:"userId"`
	DeliveryAddr   *AddressInfo    `json:"deliveryAddress"`
	DeliveryInfo   *DeliveryInfo   `json:"deliveryInfo"`

	EstimatedDeliveryFee  Numeric `json:"estimatedDeliveryFee"`
	DeliveryFee           Numeric `json:"deliveryFee"`
	Distance              Numeric `json:"distance"`
	EstimatedDeliveryTime string  `json:"estimatedDeliveryTime"`

	Items         []ItemPayload `json:"items"`
	PaymentMethod string        `json:"paymentMethod"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type RestaurantInfo struct {
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Location *Location `json:"location"`
}

type UserInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type AddressInfo struct {
	FullAddress string    `json:"fullAddress"`
	Latitude    Numeric   `json:"latitude"`
	Longitude   Numeric   `json:"longitude"`
	Location    *Location `json:"location"`
}

type DeliveryInfo struct {
	DistanceKm      Numeric `json:"distanceKm"`
	DurationMinutes Numeric `json:"durationMinutes"`
}

type ItemPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Food     *struct {
		Name string `json:"name"`
	} `json:"food"`
}

const defaultEstimatedTime = "30 min"

// Normalize maps a backend payload into the canonical Order. It is a pure
// function: every nested access is defaulted, so a near-empty payload still
// yields a fully-populated record.
func (p *OrderPayload) Normalize() Order {
	o := Order{
		ID:                p.orderID(),
		RestaurantName:    "Unknown Restaurant",
		RestaurantAddress: "",
		CustomerName:      "Customer",
		EstimatedTime:     defaultEstimatedTime,
		PaymentType:       PaymentCash,
		Status:            StatusPending,
		CreatedAt:         p.CreatedAt,
	}

	if p.Restaurant != nil && p.Restaurant.Name != "" {
		o.RestaurantName = p.Restaurant.Name
	} else if p.RestaurantRef != nil && p.RestaurantRef.Name != "" {
		o.RestaurantName = p.RestaurantRef.Name
	}

	if p.Restaurant != nil && p.Restaurant.Address != "" {
		o.RestaurantAddress = p.Restaurant.Address
	} else if p.RestaurantAddr != nil {
		o.RestaurantAddress = p.RestaurantAddr.FullAddress
	}

	if p.User != nil && p.User.Name != "" {
		o.CustomerName = p.User.Name
	} else if p.UserRef != nil && p.UserRef.Name != "" {
		o.CustomerName = p.UserRef.Name
	}

	if p.User != nil && p.User.Phone != "" {
		o.CustomerPhone = p.User.Phone
	} else if p.UserRef != nil {
		o.CustomerPhone = p.UserRef.Phone
	}

	if p.DeliveryAddr != nil {
		o.CustomerAddress = p.DeliveryAddr.FullAddress
	}

	if p.DeliveryInfo != nil && p.DeliveryInfo.DistanceKm > 0 {
		o.DistanceKm = float64(p.DeliveryInfo.DistanceKm)
	} else {
		o.DistanceKm = float64(p.Distance)
	}

	if p.DeliveryInfo != nil && p.DeliveryInfo.DurationMinutes > 0 {
		o.EstimatedTime = fmt.Sprintf("%d min", int(math.Ceil(float64(p.DeliveryInfo.DurationMinutes))))
	} else if p.EstimatedDeliveryTime != "" {
		o.EstimatedTime = p.EstimatedDeliveryTime
	}

	if p.EstimatedDeliveryFee > 0 {
		o.Earnings = float64(p.EstimatedDeliveryFee)
	} else {
		o.Earnings = float64(p.DeliveryFee)
	}

	o.Items = make([]LineItem, 0, len(p.Items))
	for _, it := range p.Items {
		name := it.Name
		if it.Food != nil && it.Food.Name != "" {
			name = it.Food.Name
		}
		o.Items = append(o.Items, LineItem{Name: name, Quantity: it.Quantity})
	}

	if p.PaymentMethod == "card" {
		o.PaymentType = PaymentOnline
	}

	if p.Status != "" {
		o.Status = OrderStatus(p.Status)
	}

	o.PickupLocation = p.pickupLocation()
	o.DropLocation = p.dropLocation()

	return o
}

func (p *OrderPayload) orderID() string {
	if p.MongoID != "" {
		return p.MongoID
	}
	return p.ID
}

func (p *OrderPayload) pickupLocation() *Location {
	if p.Restaurant != nil && p.Restaurant.Location != nil {
		loc := *p.Restaurant.Location
		return &loc
	}
	if p.RestaurantAddr != nil {
		if loc := p.RestaurantAddr.location(); loc != nil {
			return loc
		}
	}
	return nil
}

func (p *OrderPayload) dropLocation() *Location {
	if p.DeliveryAddr == nil {
		return nil
	}
	if p.DeliveryAddr.Location != nil {
		loc := *p.DeliveryAddr.Location
		return &loc
	}
	return p.DeliveryAddr.location()
}

func (a *AddressInfo) location() *Location {
	if a.Latitude == 0 && a.Longitude == 0 {
		return nil
	}
	return &Location{Latitude: float64(a.Latitude), Longitude: float64(a.Longitude)}
}

// NormalizeAll maps a payload slice, preserving order.
func NormalizeAll(payloads []OrderPayload) []Order {
	orders := make([]Order, 0, len(payloads))
	for i := range payloads {
		orders = append(orders, payloads[i].Normalize())
	}
	return orders
}

var _ json.Unmarshaler = (*Numeric)(nil)
