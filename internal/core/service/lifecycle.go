package service

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/port"
)

// Snapshot is a consistent copy of the lifecycle state handed to
// subscribers and the status API. Mutating it has no effect on the store.
type Snapshot struct {
	Pending        *domain.Order   `json:"pendingOrder"`
	Active         *domain.Order   `json:"activeOrder"`
	History        []domain.Order  `json:"orderHistory"`
	Available      []domain.Order  `json:"availableOrders"`
	DriverLocation domain.Location `json:"driverLocation"`
	Loading        bool            `json:"loading"`
}

// Lifecycle is the single source of truth for the rider's order state. It
// merges realtime events, REST responses and user actions into one view:
// at most one pending decision, at most one active order, plus history and
// the browsable available list. All mutations are confirmation-first; no
// slot changes before the backend call that justifies it has succeeded.
type Lifecycle struct {
	api   port.OrderAPI
	rt    port.Realtime
	alert port.Alerter
	log   *zap.Logger

	mu             sync.Mutex
	pending        *domain.Order
	active         *domain.Order
	history        []domain.Order
	available      []domain.Order
	driverLocation domain.Location
	loading        bool
	accepting      bool

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	unsubs []port.Unsubscribe
}

func NewLifecycle(api port.OrderAPI, rt port.Realtime, alert port.Alerter, log *zap.Logger) *Lifecycle {
	return &Lifecycle{
		api:   api,
		rt:    rt,
		alert: alert,
		log:   log,
		subs:  make(map[int]func(Snapshot)),
	}
}

// BindRealtime attaches the store to the push channel. Call once after
// construction; Close releases the handlers.
func (s *Lifecycle) BindRealtime() {
	s.unsubs = append(s.unsubs,
		s.rt.On(port.EventNewDelivery, s.onNewDelivery),
		s.rt.On(port.EventOrderTaken, s.onOrderTaken),
		s.rt.On(port.EventOrderUpdated, s.onOrderUpdated),
	)
}

func (s *Lifecycle) Close() {
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// state change. The returned cancel func removes it.
func (s *Lifecycle) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Lifecycle) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Lifecycle) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		DriverLocation: s.driverLocation,
		Loading:        s.loading,
		History:        append([]domain.Order(nil), s.history...),
		Available:      append([]domain.Order(nil), s.available...),
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	if s.active != nil {
		a := *s.active
		snap.Active = &a
	}
	return snap
}

// HandleIncoming stores a freshly offered order as the pending decision.
// An active order does not block the offer from being stored, but the
// situation is abnormal and gets logged.
func (s *Lifecycle) HandleIncoming(payload domain.OrderPayload) {
	order := payload.Normalize()

	s.mu.Lock()
	if s.active != nil {
		s.log.Warn("incoming order while another is active",
			zap.String("incoming_id", order.ID),
			zap.String("active_id", s.active.ID))
	}
	s.pending = &order
	s.mu.Unlock()

	s.log.Info("new delivery available", zap.String("order_id", order.ID))
	s.notify()
}

// Accept claims the pending order. The pending slot is only consumed after
// the backend confirms; a failure leaves it untouched and surfaces the
// server message to the user. Duplicate taps while a request is in flight
// are rejected with ErrAcceptInFlight.
func (s *Lifecycle) Accept(ctx context.Context, orderID string) error {
	s.mu.Lock()
	if s.pending == nil || s.pending.ID != orderID {
		s.mu.Unlock()
		return domain.ErrOrderMismatch
	}
	if s.accepting {
		s.mu.Unlock()
		return domain.ErrAcceptInFlight
	}
	s.accepting = true
	s.loading = true
	s.mu.Unlock()
	s.notify()

	_, err := s.api.AcceptOrder(ctx, orderID)

	s.mu.Lock()
	s.accepting = false
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		s.log.Error("accept order failed", zap.String("order_id", orderID), zap.Error(err))
		s.alert.Alert("Error", domain.UserMessage(err))
		s.notify()
		return err
	}

	// The offer may have been revoked while the request was in flight.
	if s.pending == nil || s.pending.ID != orderID {
		s.mu.Unlock()
		s.log.Warn("pending order vanished during accept, refetching", zap.String("order_id", orderID))
		return s.FetchAssigned(ctx)
	}

	active := *s.pending
	active.Status = domain.StatusAccepted
	s.active = &active
	s.pending = nil
	if active.PickupLocation != nil {
		s.driverLocation = *active.PickupLocation
	}
	s.mu.Unlock()

	s.rt.JoinOrder(orderID)
	s.log.Info("order accepted", zap.String("order_id", orderID))
	s.notify()
	return nil
}

// Reject discards the matching pending offer locally. The backend is not
// informed synchronously; a mismatched id is silently ignored.
func (s *Lifecycle) Reject(orderID string) {
	s.mu.Lock()
	if s.pending == nil || s.pending.ID != orderID {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	s.log.Info("order rejected locally", zap.String("order_id", orderID))
	s.notify()
}

// AdvanceStatus pushes the active order to its next status. The local copy
// mutates only after the backend confirms, so no rollback is ever needed.
func (s *Lifecycle) AdvanceStatus(ctx context.Context, status domain.OrderStatus) error {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return domain.ErrNoActiveOrder
	}
	orderID := s.active.ID
	s.loading = true
	s.mu.Unlock()
	s.notify()

	err := s.api.UpdateOrderStatus(ctx, orderID, status)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		s.log.Error("status update failed",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err))
		s.notify()
		return err
	}
	if s.active != nil && s.active.ID == orderID {
		s.active.Status = status
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Complete archives the active order into history with status delivered.
// Local-only: the triggering status update already happened server-side.
func (s *Lifecycle) Complete() {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return
	}
	done := *s.active
	done.Status = domain.StatusDelivered
	s.history = append([]domain.Order{done}, s.history...)
	s.active = nil
	s.mu.Unlock()

	s.log.Info("order completed", zap.String("order_id", done.ID))
	s.notify()
}

// FetchAvailable replaces the browsable order list from the backend.
func (s *Lifecycle) FetchAvailable(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	payloads, err := s.api.AvailableOrders(ctx)
	if err != nil {
		s.log.Error("fetch available orders failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.available = domain.NormalizeAll(payloads)
	s.mu.Unlock()
	s.notify()
	return nil
}

// FetchAssigned restores the active order after a restart: the first
// assigned order becomes active and its room is re-joined.
func (s *Lifecycle) FetchAssigned(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	payloads, err := s.api.AssignedOrders(ctx)
	if err != nil {
		s.log.Error("fetch assigned orders failed", zap.Error(err))
		return err
	}
	if len(payloads) == 0 {
		return nil
	}

	order := payloads[0].Normalize()
	s.mu.Lock()
	s.active = &order
	s.mu.Unlock()

	s.rt.JoinOrder(order.ID)
	s.notify()
	return nil
}

// FetchHistory replaces the completed-order list for the given page.
func (s *Lifecycle) FetchHistory(ctx context.Context, page int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	payloads, err := s.api.OrderHistory(ctx, page, 20)
	if err != nil {
		s.log.Error("fetch order history failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.history = domain.NormalizeAll(payloads)
	s.mu.Unlock()
	s.notify()
	return nil
}

// ReportLocation persists the position to the backend, updates the local
// slot, and broadcasts over the order room when a delivery is in progress.
func (s *Lifecycle) ReportLocation(ctx context.Context, latitude, longitude float64) error {
	if err := s.api.ReportLocation(ctx, latitude, longitude); err != nil {
		s.log.Error("report location failed", zap.Error(err))
		return err
	}

	loc := domain.Location{Latitude: latitude, Longitude: longitude}
	s.mu.Lock()
	s.driverLocation = loc
	var activeID string
	if s.active != nil {
		activeID = s.active.ID
	}
	s.mu.Unlock()

	if activeID != "" {
		s.rt.SendLocation(activeID, loc, 0)
	}
	s.notify()
	return nil
}

func (s *Lifecycle) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify()
}

func (s *Lifecycle) onNewDelivery(payload []byte) {
	var p domain.OrderPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.log.Warn("malformed new-delivery payload", zap.Error(err))
		return
	}
	s.HandleIncoming(p)
}

func (s *Lifecycle) onOrderTaken(payload []byte) {
	var msg struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.log.Warn("malformed order-taken payload", zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.pending == nil || s.pending.ID != msg.OrderID {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	s.log.Info("order taken by another rider", zap.String("order_id", msg.OrderID))
	s.notify()
}

func (s *Lifecycle) onOrderUpdated(payload []byte) {
	var p domain.OrderPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.log.Warn("malformed order-updated payload", zap.Error(err))
		return
	}
	orderID := p.MongoID
	if orderID == "" {
		orderID = p.ID
	}
	status := domain.OrderStatus(p.Status)

	changed := false
	s.mu.Lock()
	if s.active != nil && s.active.ID == orderID {
		s.active.Status = status
		changed = true
	}
	if s.pending != nil && s.pending.ID == orderID {
		if status.Terminal() {
			// The decision window has closed.
			s.pending = nil
		} else {
			s.pending.Status = status
		}
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.log.Info("order updated",
			zap.String("order_id", orderID),
			zap.String("status", string(status)))
		s.notify()
	}
}
