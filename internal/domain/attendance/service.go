package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/listquery"
)

// AttendanceService drives the attendance page for the signed-in user.
type AttendanceService interface {
	// Load fetches the profile and records concurrently and derives today's status.
	Load(ctx context.Context) (Board, error)

	// ClockIn opens today's record. At most one clock action per user runs at a time.
	ClockIn(ctx context.Context, req ClockRequest) (Board, error)

	// ClockOut closes today's record.
	ClockOut(ctx context.Context, req ClockRequest) (Board, error)

	// History pages through past records on the upstream.
	History(ctx context.Context, q listquery.Query) (listquery.Result[Record], error)

	// Forget drops cached state of a session that has ended.
	Forget(sessionID string)
	// SessionIDs lists the sessions with cached state.
	SessionIDs() []string
}
