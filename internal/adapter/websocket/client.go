// Package websocket maintains the single realtime connection to the
// backend and fans incoming events out to registered listeners by name.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/port"
)

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is the process-wide realtime connection. Events are dispatched to
// handlers in arrival order on the read loop; handlers must not block.
// Connect failures and drops are logged only, and the client keeps
// reconnecting with capped backoff until Close.
type Client struct {
	url string
	log *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn

	handlerMu sync.Mutex
	handlers  map[string]map[int]func([]byte)
	nextID    int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewClient(url string, log *zap.Logger) *Client {
	return &Client{
		url:      url,
		log:      log,
		handlers: make(map[string]map[int]func([]byte)),
	}
}

// Connect starts the connection loop. It returns immediately; the first
// dial happens in the background so a dead backend never blocks startup.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.done != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.run(ctx, done)
}

func (c *Client) Close() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	backoff := initialBackoff
	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.log.Error("realtime connect failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = initialBackoff

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.log.Info("realtime connected")

		// Register for fleet-wide delivery offers on every (re)connect.
		c.emit(port.EmitJoinDeliveryUpdates, nil)

		c.readLoop(ctx, conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()

		select {
		case <-ctx.Done():
			return
		default:
			c.log.Warn("realtime disconnected, reconnecting")
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.log.Warn("malformed realtime message", zap.Error(err))
			continue
		}
		c.dispatch(env.Event, env.Payload)
	}
}

func (c *Client) dispatch(event string, payload []byte) {
	c.handlerMu.Lock()
	fns := make([]func([]byte), 0, len(c.handlers[event]))
	for _, fn := range c.handlers[event] {
		fns = append(fns, fn)
	}
	c.handlerMu.Unlock()

	for _, fn := range fns {
		fn(payload)
	}
}

// On registers a handler for an event name and returns its unsubscribe
// handle. Handles are independent; unsubscribing one leaves the rest.
func (c *Client) On(event string, handler func(payload []byte)) port.Unsubscribe {
	c.handlerMu.Lock()
	id := c.nextID
	c.nextID++
	if c.handlers[event] == nil {
		c.handlers[event] = make(map[int]func([]byte))
	}
	c.handlers[event][id] = handler
	c.handlerMu.Unlock()

	return func() {
		c.handlerMu.Lock()
		delete(c.handlers[event], id)
		c.handlerMu.Unlock()
	}
}

func (c *Client) JoinOrder(orderID string) {
	c.emit(port.EmitJoinOrder, JoinOrderPayload{OrderID: orderID})
	c.log.Info("joined order room", zap.String("order_id", orderID))
}

func (c *Client) SendLocation(orderID string, loc domain.Location, heading float64) {
	c.emit(port.EmitUpdateLocation, LocationUpdatePayload{
		OrderID:  orderID,
		Location: loc,
		Heading:  heading,
	})
}

// emit writes an envelope if connected; messages while disconnected are
// dropped, matching the channel's fire-and-forget contract.
func (c *Client) emit(event string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		c.log.Debug("emit skipped, not connected", zap.String("event", event))
		return
	}

	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.log.Error("marshal emit payload failed", zap.String("event", event), zap.Error(err))
			return
		}
		env.Payload = data
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(env); err != nil {
		c.log.Warn("realtime write failed", zap.String("event", event), zap.Error(err))
	}
}
