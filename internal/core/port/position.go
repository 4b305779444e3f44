package port

import (
	"context"
	"time"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
)

// PositionSource provides the device position. Watch delivers updates when
// the device moves beyond minDistance meters or minInterval elapses,
// whichever the underlying platform supports; the channel closes when ctx
// is cancelled. Both methods return domain.ErrPermissionDenied when the
// user has refused location access.
type PositionSource interface {
	Current(ctx context.Context) (domain.Location, error)
	Watch(ctx context.Context, minInterval time.Duration, minDistance float64) (<-chan domain.Location, error)
}

// Alerter is the blocking user-facing alert surface. Implementations must
// not panic when invoked from background goroutines.
type Alerter interface {
	Alert(title, message string)
}
