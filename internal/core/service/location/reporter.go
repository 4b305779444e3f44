// Package location decides when to sample the device position and forward
// it to the order lifecycle store, gated by the rider's online status.
package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/port"
)

// Sink receives sampled positions. Satisfied by *service.Lifecycle.
type Sink interface {
	ReportLocation(ctx context.Context, latitude, longitude float64) error
}

type Options struct {
	// Interval between forced re-samples, and the minimum time the watch
	// waits between movement callbacks.
	Interval time.Duration
	// DistanceThreshold in meters before the watch fires on movement.
	DistanceThreshold float64
}

// Reporter is a two-state machine: idle until the rider goes online, then
// tracking until they go offline. While tracking it reports through two
// redundant paths, a movement watch and a fixed-interval timer; duplicate
// reports are expected and left for the backend to absorb.
type Reporter struct {
	sink  Sink
	pos   port.PositionSource
	alert port.Alerter
	log   *zap.Logger
	opts  Options

	mu       sync.Mutex
	tracking bool
	cancel   context.CancelFunc
	done     chan struct{}
	warned   bool
}

func NewReporter(sink Sink, pos port.PositionSource, alert port.Alerter, log *zap.Logger, opts Options) *Reporter {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.DistanceThreshold <= 0 {
		opts.DistanceThreshold = 50
	}
	return &Reporter{sink: sink, pos: pos, alert: alert, log: log, opts: opts}
}

func (r *Reporter) Tracking() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracking
}

// SetOnline transitions the machine: online while idle starts tracking,
// offline while tracking tears down the watch and the timer. Repeated
// calls with the current state are no-ops.
func (r *Reporter) SetOnline(online bool) {
	r.mu.Lock()
	if online == r.tracking {
		r.mu.Unlock()
		return
	}
	if !online {
		cancel, done := r.cancel, r.done
		r.tracking = false
		r.cancel = nil
		r.done = nil
		r.mu.Unlock()
		cancel()
		<-done
		r.log.Info("location tracking stopped")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.tracking = true
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go r.track(ctx, done)
}

// Stop is SetOnline(false); exposed for teardown paths.
func (r *Reporter) Stop() {
	r.SetOnline(false)
}

// Foreground re-samples once when the app returns to the foreground while
// online. Idle reporters ignore it.
func (r *Reporter) Foreground(ctx context.Context) {
	if !r.Tracking() {
		return
	}
	r.sampleAndReport(ctx)
}

func (r *Reporter) track(ctx context.Context, done chan struct{}) {
	defer close(done)

	// One immediate report on entering the tracking state.
	r.sampleAndReport(ctx)

	watch, err := r.pos.Watch(ctx, r.opts.Interval, r.opts.DistanceThreshold)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			r.permissionDenied()
			return
		}
		r.log.Error("position watch failed", zap.Error(err))
		return
	}

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case loc, ok := <-watch:
			if !ok {
				return
			}
			r.report(ctx, loc)
		case <-ticker.C:
			// Covers quiet periods when the watch emits nothing.
			r.sampleAndReport(ctx)
		}
	}
}

func (r *Reporter) sampleAndReport(ctx context.Context) {
	loc, err := r.pos.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			r.permissionDenied()
			return
		}
		r.log.Warn("position sample failed", zap.Error(err))
		return
	}
	r.report(ctx, loc)
}

func (r *Reporter) report(ctx context.Context, loc domain.Location) {
	if err := r.sink.ReportLocation(ctx, loc.Latitude, loc.Longitude); err != nil {
		// Skipped; the next watch callback or interval tick retries.
		r.log.Warn("location report failed", zap.Error(err))
	}
}

// permissionDenied surfaces a one-time alert and halts tracking.
func (r *Reporter) permissionDenied() {
	r.mu.Lock()
	warned := r.warned
	r.warned = true
	r.tracking = false
	cancel := r.cancel
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if !warned {
		r.alert.Alert("Location Permission Required",
			"Please enable location permissions in settings to track deliveries.")
	}
	r.log.Warn("location permission denied, tracking halted")
}
