package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
	"boxoffice/pkg/log"
)

func (h Handler) JournalConfirmedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"JournalConfirmedHandler",
		func(ctx context.Context, event *entity.ReservationConfirmed) error {
			err := h.attempts.Store(ctx, entity.AttemptRecord{
				PaymentID:     event.Attempt.PaymentID,
				OrderID:       event.Attempt.OrderID,
				EventID:       event.Attempt.EventID,
				SeatID:        event.Attempt.SeatID,
				SeatCode:      event.Attempt.SeatCode,
				Amount:        event.Attempt.Amount,
				Outcome:       string(entity.OutcomeConfirmed),
				ReservationID: event.ReservationID,
				Message:       event.Message,
				OccurredAt:    event.Header.PublishedAt,
			})
			if err != nil {
				return fmt.Errorf("could not journal confirmed attempt: %w", err)
			}
			return nil
		},
	)
}

// JournalConflictedHandler records paid-but-unbooked attempts. These are
// the rows the support team works from, so they are flagged for
// reconciliation.
func (h Handler) JournalConflictedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"JournalConflictedHandler",
		func(ctx context.Context, event *entity.ReservationConflicted) error {
			log.FromContext(ctx).WithField("payment_id", event.Attempt.PaymentID).Warn("Journaling conflicted attempt")

			err := h.attempts.Store(ctx, entity.AttemptRecord{
				PaymentID:              event.Attempt.PaymentID,
				OrderID:                event.Attempt.OrderID,
				EventID:                event.Attempt.EventID,
				SeatID:                 event.Attempt.SeatID,
				SeatCode:               event.Attempt.SeatCode,
				Amount:                 event.Attempt.Amount,
				Outcome:                string(entity.OutcomeConflict),
				Message:                event.Message,
				RequiresReconciliation: true,
				OccurredAt:             event.Header.PublishedAt,
			})
			if err != nil {
				return fmt.Errorf("could not journal conflicted attempt: %w", err)
			}
			return nil
		},
	)
}

func (h Handler) JournalFailedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"JournalFailedHandler",
		func(ctx context.Context, event *entity.ReservationFailed) error {
			outcome := entity.OutcomePaymentFailed
			requiresReconciliation := false
			switch event.Stage {
			case "verify":
				outcome = entity.OutcomeVerificationFailed
				requiresReconciliation = true
			case "book":
				outcome = entity.OutcomeFailed
				requiresReconciliation = true
			}

			err := h.attempts.Store(ctx, entity.AttemptRecord{
				PaymentID:              event.Attempt.PaymentID,
				OrderID:                event.Attempt.OrderID,
				EventID:                event.Attempt.EventID,
				SeatID:                 event.Attempt.SeatID,
				SeatCode:               event.Attempt.SeatCode,
				Amount:                 event.Attempt.Amount,
				Outcome:                string(outcome),
				Message:                event.Message,
				RequiresReconciliation: requiresReconciliation,
				OccurredAt:             event.Header.PublishedAt,
			})
			if err != nil {
				return fmt.Errorf("could not journal failed attempt: %w", err)
			}
			return nil
		},
	)
}
