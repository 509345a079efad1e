package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
	"boxoffice/pkg/log"
)

// The seat map is refreshed right after any attempt that changed seat
// ownership on the server, so the customer is not left looking at a
// stale map until the next poll tick.

func (h Handler) RefreshSeatsOnConfirmedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"RefreshSeatsOnConfirmedHandler",
		func(ctx context.Context, event *entity.ReservationConfirmed) error {
			log.FromContext(ctx).Info("Refreshing seats after confirmed reservation")

			if _, err := h.seats.Refresh(ctx); err != nil {
				return fmt.Errorf("could not refresh seats: %w", err)
			}
			return nil
		},
	)
}

func (h Handler) RefreshSeatsOnConflictHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"RefreshSeatsOnConflictHandler",
		func(ctx context.Context, event *entity.ReservationConflicted) error {
			log.FromContext(ctx).Info("Refreshing seats after booking conflict")

			if _, err := h.seats.Refresh(ctx); err != nil {
				return fmt.Errorf("could not refresh seats: %w", err)
			}
			return nil
		},
	)
}
