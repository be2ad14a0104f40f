package events

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/payledger/pkg/ids"
	"go.uber.org/zap"
)

type Kind string

const (
	TransactionCompleted Kind = "transaction.completed"
	TransactionFailed    Kind = "transaction.failed"
	TransactionCancelled Kind = "transaction.cancelled"
	RefundCompleted      Kind = "refund.completed"
	AccountVerified      Kind = "payout_account.verified"
	AccountFailed        Kind = "payout_account.failed"
	PayoutCompleted      Kind = "payout.completed"
	PayoutFailed         Kind = "payout.failed"
	PayoutCancelled      Kind = "payout.cancelled"
)

// Event describes a resolved ledger entity.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	EntityID   string    `json:"entity_id"`
	UserID     string    `json:"user_id"`
	Amount     float64   `json:"amount,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(kind Kind, entityID, userID, status string, at time.Time) Event {
	return Event{
		ID:         ids.New(ids.EventPrefix),
		Kind:       kind,
		EntityID:   entityID,
		UserID:     userID,
		Status:     status,
		OccurredAt: at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the global logger.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	zap.L().Info("Ledger event",
		zap.String("kind", string(event.Kind)),
		zap.String("entityID", event.EntityID),
		zap.String("userID", event.UserID),
		zap.String("status", event.Status),
		zap.Float64("amount", event.Amount),
		zap.String("reason", event.Reason),
	)
	return nil
}

// Multi delivers to every publisher, even after one of them fails.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
