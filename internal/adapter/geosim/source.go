// Package geosim is a simulated position source for development: the
// rider drifts a fixed fraction of the remaining distance toward the
// active order's current target on every tick.
package geosim

import (
	"context"
	"sync"
	"time"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

const driftFraction = 0.1

// TargetFunc returns where the simulated rider should be heading, or nil
// to stay put.
type TargetFunc func() *domain.Location

type Source struct {
	mu      sync.Mutex
	current domain.Location
	target  TargetFunc
}

func New(start domain.Location, target TargetFunc) *Source {
	return &Source{current: start, target: target}
}

func (s *Source) Current(ctx context.Context) (domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

// Watch advances the position every minInterval and emits it. The distance
// threshold is ignored; the simulator always moves when it has a target.
func (s *Source) Watch(ctx context.Context, minInterval time.Duration, minDistance float64) (<-chan domain.Location, error) {
	out := make(chan domain.Location)
	go func() {
		defer close(out)
		ticker := time.NewTicker(minInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				loc, moved := s.step()
				if !moved {
					continue
				}
				select {
				case out <- loc:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *Source) step() (domain.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.target()
	if target == nil {
		return s.current, false
	}
	s.current.Latitude += (target.Latitude - s.current.Latitude) * driftFraction
	s.current.Longitude += (target.Longitude - s.current.Longitude) * driftFraction
	return s.current, true
}
