package processor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/events"
	"github.com/GlebRadaev/payledger/internal/metrics"
)

// Runtime bundles what the ledger services need to resolve entities later:
// where to schedule, how to decide, what time it is and who to tell.
type Runtime struct {
	Scheduler Scheduler
	Outcome   Outcome
	Clock     Clock
	Events    events.Publisher
	Metrics   *metrics.Recorder

	// RetryDelay is how long recovery waits before rescheduling an entity whose
	// task key is still held. Zero means DefaultRetryDelay.
	RetryDelay time.Duration
}

const DefaultRetryDelay = time.Minute

func (rt Runtime) Retry() time.Duration {
	if rt.RetryDelay <= 0 {
		return DefaultRetryDelay
	}
	return rt.RetryDelay
}

func (rt Runtime) Now() time.Time {
	if rt.Clock == nil {
		return time.Now()
	}
	return rt.Clock.Now()
}

// Publish delivers event and only logs a failure; resolution never depends on delivery.
func (rt Runtime) Publish(ctx context.Context, event events.Event) {
	if rt.Events == nil {
		return
	}
	if err := rt.Events.Publish(ctx, event); err != nil {
		zap.L().Warn("Failed to publish event",
			zap.String("kind", string(event.Kind)),
			zap.String("entityID", event.EntityID),
			zap.Error(err))
	}
}
