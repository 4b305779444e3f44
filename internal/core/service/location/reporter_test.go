package location

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

type fakeSink struct {
	mu      sync.Mutex
	reports []domain.Location
}

func (f *fakeSink) ReportLocation(ctx context.Context, lat, lng float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, domain.Location{Latitude: lat, Longitude: lng})
	return nil
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reports)
}

type fakePosition struct {
	mu      sync.Mutex
	loc     domain.Location
	err     error
	watch   chan domain.Location
	watches int
}

func (f *fakePosition) Current(ctx context.Context) (domain.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loc, f.err
}

func (f *fakePosition) Watch(ctx context.Context, minInterval time.Duration, minDistance float64) (<-chan domain.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.watches++
	return f.watch, nil
}

func (f *fakePosition) watchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watches
}

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []string
}

func (r *recordingAlerter) Alert(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, title)
}

func (r *recordingAlerter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestReporter_OnlineStartsTracking(t *testing.T) {
	sink := &fakeSink{}
	pos := &fakePosition{loc: domain.Location{Latitude: 1, Longitude: 2}, watch: make(chan domain.Location)}
	rep := NewReporter(sink, pos, &recordingAlerter{}, zap.NewNop(), Options{Interval: time.Hour})
	defer rep.Stop()

	rep.SetOnline(true)

	assert.True(t, rep.Tracking())
	// One immediate report on entering the tracking state.
	waitFor(t, func() bool { return sink.count() == 1 })
}

func TestReporter_WatchMovementReports(t *testing.T) {
	sink := &fakeSink{}
	watch := make(chan domain.Location)
	pos := &fakePosition{watch: watch}
	rep := NewReporter(sink, pos, &recordingAlerter{}, zap.NewNop(), Options{Interval: time.Hour})
	defer rep.Stop()

	rep.SetOnline(true)
	waitFor(t, func() bool { return sink.count() == 1 })

	watch <- domain.Location{Latitude: 3, Longitude: 4}
	waitFor(t, func() bool { return sink.count() == 2 })
}

func TestReporter_IntervalReportsWithoutMovement(t *testing.T) {
	sink := &fakeSink{}
	pos := &fakePosition{watch: make(chan domain.Location)}
	rep := NewReporter(sink, pos, &recordingAlerter{}, zap.NewNop(), Options{Interval: 20 * time.Millisecond})
	defer rep.Stop()

	rep.SetOnline(true)
	waitFor(t, func() bool { return sink.count() >= 3 })
}

func TestReporter_OfflineStopsReports(t *testing.T) {
	sink := &fakeSink{}
	pos := &fakePosition{watch: make(chan domain.Location)}
	rep := NewReporter(sink, pos, &recordingAlerter{}, zap.NewNop(), Options{Interval: 20 * time.Millisecond})

	rep.SetOnline(true)
	waitFor(t, func() bool { return sink.count() >= 2 })

	rep.SetOnline(false)
	assert.False(t, rep.Tracking())

	settled := sink.count()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, sink.count(), "no reports may fire after going offline")
}

func TestReporter_RepeatedToggleIsNoOp(t *testing.T) {
	sink := &fakeSink{}
	pos := &fakePosition{watch: make(chan domain.Location)}
	rep := NewReporter(sink, pos, &recordingAlerter{}, zap.NewNop(), Options{Interval: time.Hour})
	defer rep.Stop()

	rep.SetOnline(true)
	rep.SetOnline(true)
	waitFor(t, func() bool { return pos.watchCount() == 1 })

	rep.SetOnline(false)
	rep.SetOnline(false)
	assert.False(t, rep.Tracking())
}

func TestReporter_PermissionDeniedAlertsOnce(t *testing.T) {
	sink := &fakeSink{}
	al := &recordingAlerter{}
	pos := &fakePosition{err: domain.ErrPermissionDenied}
	rep := NewReporter(sink, pos, al, zap.NewNop(), Options{Interval: time.Hour})

	rep.SetOnline(true)
	waitFor(t, func() bool { return !rep.Tracking() })
	waitFor(t, func() bool { return al.count() >= 1 })

	// Going online again after a denial must not alert a second time.
	rep.SetOnline(true)
	waitFor(t, func() bool { return !rep.Tracking() })
	assert.Equal(t, 1, al.count())
	assert.Zero(t, sink.count())
}

func TestReporter_ForegroundResamplesWhileOnline(t *testing.T) {
	sink := &fakeSink{}
	pos := &fakePosition{loc: domain.Location{Latitude: 5, Longitude: 6}, watch: make(chan domain.Location)}
	rep := NewReporter(sink, pos, &recordingAlerter{}, zap.NewNop(), Options{Interval: time.Hour})
	defer rep.Stop()

	// Idle reporters ignore foreground events.
	rep.Foreground(context.Background())
	assert.Zero(t, sink.count())

	rep.SetOnline(true)
	waitFor(t, func() bool { return sink.count() == 1 })

	rep.Foreground(context.Background())
	waitFor(t, func() bool { return sink.count() == 2 })
}
