package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
	"boxoffice/pkg/log"
)

// Each terminal outcome maps to exactly one notification. Only a
// confirmed reservation or an expired session may ask the surface to
// close; everything else leaves the customer on the seat map.

func (h Handler) NotifyReservationConfirmedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifyReservationConfirmedHandler",
		func(ctx context.Context, event *entity.ReservationConfirmed) error {
			log.FromContext(ctx).WithField("reservation_id", event.ReservationID).Info("Notifying about confirmed reservation")

			return h.sink.Display(ctx, entity.Notification{
				Title:        "Reservation confirmed",
				Message:      fmt.Sprintf("Seat %s is booked. See you at the show!", event.Attempt.SeatCode),
				CloseSurface: true,
			})
		},
	)
}

func (h Handler) NotifyReservationConflictedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifyReservationConflictedHandler",
		func(ctx context.Context, event *entity.ReservationConflicted) error {
			return h.sink.Display(ctx, entity.Notification{
				Title:   "Seat no longer available",
				Message: "Your payment went through, but the seat was taken in the meantime. Our team will reconcile the charge.",
				IsError: true,
			})
		},
	)
}

func (h Handler) NotifyReservationFailedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifyReservationFailedHandler",
		func(ctx context.Context, event *entity.ReservationFailed) error {
			var title, message string
			switch event.Stage {
			case "payment":
				title = "Payment failed"
				message = "The payment did not go through. Please try again."
			case "verify":
				title = "Payment verification failed"
				message = "We could not verify your payment. Please contact support."
			default:
				title = "Booking failed"
				message = "Your payment went through but the booking failed. Our team will reconcile the charge."
			}

			return h.sink.Display(ctx, entity.Notification{
				Title:   title,
				Message: message,
				IsError: true,
			})
		},
	)
}

func (h Handler) NotifyPaymentCancelledHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifyPaymentCancelledHandler",
		func(ctx context.Context, event *entity.PaymentCancelled) error {
			return h.sink.Display(ctx, entity.Notification{
				Title:   "Payment cancelled",
				Message: "The payment was cancelled. Your seat is still selected.",
			})
		},
	)
}

func (h Handler) NotifySessionExpiredHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifySessionExpiredHandler",
		func(ctx context.Context, event *entity.SessionExpired) error {
			return h.sink.Display(ctx, entity.Notification{
				Title:        "Session expired",
				Message:      event.Reason,
				IsError:      true,
				CloseSurface: event.CloseSurface,
			})
		},
	)
}

func (h Handler) NotifySeatRefreshFailedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifySeatRefreshFailedHandler",
		func(ctx context.Context, event *entity.SeatRefreshFailed) error {
			return h.sink.Display(ctx, entity.Notification{
				Title:   "Could not refresh seats",
				Message: "The seat map could not be refreshed. It will retry shortly.",
				IsError: true,
			})
		},
	)
}
