// Package reservation drives a seat through payment, verification and
// booking. The three calls run strictly in order and none of them is
// retried: a second charge or a double booking is worse than asking the
// customer to try again.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
	"boxoffice/metrics"
	"boxoffice/pkg/log"
)

type State string

const (
	StateIdle             State = "idle"
	StateSeatSelected     State = "seat_selected"
	StatePaymentPending   State = "payment_pending"
	StatePaymentVerifying State = "payment_verifying"
	StateBookingPending   State = "booking_pending"
	StateConfirmed        State = "confirmed"
	StateConflict         State = "conflict"
	StateFailed           State = "failed"
)

type SeatSource interface {
	Selected() (entity.Seat, bool)
	Deselect()
	EventID() string
}

type SessionGuard interface {
	Valid() bool
	Identity() (entity.Identity, bool)
}

type PaymentProvider interface {
	RequestPayment(ctx context.Context, request entity.PaymentRequest) (entity.PaymentResult, error)
}

type BackendGateway interface {
	VerifyPayment(ctx context.Context, attempt entity.PaymentAttempt) error
	Book(ctx context.Context, attempt entity.PaymentAttempt) (entity.BookingResult, error)
}

type Config struct {
	ChannelKey  string
	StoreID     string
	TicketPrice int
	Currency    string
	PayMethod   string
}

// Coordinator owns the reservation attempt lifecycle. One attempt at a
// time per process: Reserve rejects re-entrant calls instead of queuing
// them.
type Coordinator struct {
	seats    SeatSource
	guard    SessionGuard
	provider PaymentProvider
	backend  BackendGateway
	eventBus *cqrs.EventBus
	config   Config

	mu    sync.Mutex
	busy  bool
	state State
}

func NewCoordinator(
	seats SeatSource,
	guard SessionGuard,
	provider PaymentProvider,
	backend BackendGateway,
	eventBus *cqrs.EventBus,
	config Config,
) *Coordinator {
	if seats == nil {
		panic("missing seats")
	}
	if guard == nil {
		panic("missing guard")
	}
	if provider == nil {
		panic("missing payment provider")
	}
	if backend == nil {
		panic("missing backend gateway")
	}
	if eventBus == nil {
		panic("missing eventBus")
	}

	return &Coordinator{
		seats:    seats,
		guard:    guard,
		provider: provider,
		backend:  backend,
		eventBus: eventBus,
		config:   config,
		state:    StateIdle,
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Reserve runs one full attempt for the currently selected seat and
// reports the outcome. It returns entity.ErrAttemptInFlight while a
// previous attempt is still running, entity.ErrSessionInvalid when the
// session guard has tripped and entity.ErrNoSeatSelected without a
// selection. Business failures (declined payment, lost seat race) are
// not errors; they come back inside the outcome.
func (c *Coordinator) Reserve(ctx context.Context) (entity.ReservationOutcome, error) {
	if !c.guard.Valid() {
		return entity.ReservationOutcome{}, entity.ErrSessionInvalid
	}

	seat, ok := c.seats.Selected()
	if !ok {
		return entity.ReservationOutcome{}, entity.ErrNoSeatSelected
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return entity.ReservationOutcome{}, entity.ErrAttemptInFlight
	}
	c.busy = true
	c.state = StatePaymentPending
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	attempt := entity.NewPaymentAttempt(c.seats.EventID(), seat, c.config.TicketPrice)

	logger := log.FromContext(ctx).WithFields(map[string]any{
		"payment_id": attempt.PaymentID,
		"order_id":   attempt.OrderID,
		"seat_id":    attempt.SeatID,
	})
	logger.Info("Starting reservation attempt")

	outcome, err := c.pay(ctx, attempt)
	if err != nil || outcome.Kind != "" {
		c.setState(StateSeatSelected)
		c.countOutcome(outcome)
		return outcome, err
	}

	c.setState(StatePaymentVerifying)
	if err := c.backend.VerifyPayment(ctx, attempt); err != nil {
		logger.WithError(err).Error("Payment verification failed")
		c.setState(StateFailed)
		outcome = entity.ReservationOutcome{
			Kind:      entity.OutcomeVerificationFailed,
			PaymentID: attempt.PaymentID,
			Message:   "Payment could not be verified. Please contact support.",
		}
		c.publish(ctx, entity.ReservationFailed{
			Header:  entity.NewEventHeader(),
			Attempt: attempt,
			Stage:   "verify",
			Message: outcome.Message,
		})
		c.countOutcome(outcome)
		return outcome, nil
	}

	// Past this point the customer has been charged. A booking failure
	// is a conflict needing reconciliation, never a silent retry.
	c.setState(StateBookingPending)
	booking, err := c.backend.Book(ctx, attempt)
	if err != nil {
		if errors.Is(err, entity.ErrConflict) {
			logger.WithError(err).Warn("Seat taken after payment")
			c.setState(StateConflict)
			outcome = entity.ReservationOutcome{
				Kind:      entity.OutcomeConflict,
				PaymentID: attempt.PaymentID,
				Message:   "Payment succeeded but the seat was already taken. Our team will reconcile the charge.",
			}
			c.publish(ctx, entity.ReservationConflicted{
				Header:  entity.NewEventHeader(),
				Attempt: attempt,
				Message: err.Error(),
			})
		} else {
			logger.WithError(err).Error("Booking failed after payment")
			c.setState(StateFailed)
			outcome = entity.ReservationOutcome{
				Kind:      entity.OutcomeFailed,
				PaymentID: attempt.PaymentID,
				Message:   "Booking failed after payment. Our team will reconcile the charge.",
			}
			c.publish(ctx, entity.ReservationFailed{
				Header:  entity.NewEventHeader(),
				Attempt: attempt,
				Stage:   "book",
				Message: err.Error(),
			})
		}
		c.countOutcome(outcome)
		return outcome, nil
	}

	c.setState(StateConfirmed)
	c.seats.Deselect()

	logger.WithField("reservation_id", booking.ReservationID).Info("Reservation confirmed")

	outcome = entity.ReservationOutcome{
		Kind:          entity.OutcomeConfirmed,
		PaymentID:     attempt.PaymentID,
		ReservationID: booking.ReservationID,
		Message:       booking.Message,
	}
	c.publish(ctx, entity.ReservationConfirmed{
		Header:        entity.NewEventHeader(),
		ReservationID: booking.ReservationID,
		Attempt:       attempt,
		Message:       booking.Message,
	})
	c.countOutcome(outcome)

	return outcome, nil
}

// pay requests the charge from the provider. A zero-Kind outcome and
// nil error means the payment went through and the attempt continues.
func (c *Coordinator) pay(ctx context.Context, attempt entity.PaymentAttempt) (entity.ReservationOutcome, error) {
	customer := entity.PaymentCustomer{}
	if who, ok := c.guard.Identity(); ok {
		customer.FullName = who.Nickname
	}

	result, err := c.provider.RequestPayment(ctx, entity.PaymentRequest{
		ChannelKey: c.config.ChannelKey,
		StoreID:    c.config.StoreID,
		PaymentID:  attempt.PaymentID,
		OrderID:    attempt.OrderID,
		Amount:     attempt.Amount,
		OrderName:  attempt.OrderName(),
		Customer:   customer,
		Method:     c.config.PayMethod,
		Currency:   c.config.Currency,
	})
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("Payment request failed")
		outcome := entity.ReservationOutcome{
			Kind:      entity.OutcomePaymentFailed,
			PaymentID: attempt.PaymentID,
			Message:   "Payment could not be started. Please try again.",
		}
		c.publish(ctx, entity.ReservationFailed{
			Header:  entity.NewEventHeader(),
			Attempt: attempt,
			Stage:   "payment",
			Message: err.Error(),
		})
		return outcome, nil
	}

	if result.Cancelled() {
		log.FromContext(ctx).Info("Payment cancelled by customer")
		c.publish(ctx, entity.PaymentCancelled{
			Header:  entity.NewEventHeader(),
			Attempt: attempt,
		})
		return entity.ReservationOutcome{
			Kind:      entity.OutcomeUserCancelled,
			PaymentID: attempt.PaymentID,
			Message:   "Payment was cancelled.",
		}, nil
	}

	if result.Code != "" {
		log.FromContext(ctx).WithField("code", result.Code).Warn("Payment declined")
		outcome := entity.ReservationOutcome{
			Kind:      entity.OutcomePaymentFailed,
			PaymentID: attempt.PaymentID,
			Message:   fmt.Sprintf("Payment failed: %s", result.Message),
		}
		c.publish(ctx, entity.ReservationFailed{
			Header:  entity.NewEventHeader(),
			Attempt: attempt,
			Stage:   "payment",
			Message: result.Message,
		})
		return outcome, nil
	}

	if result.PaymentID != attempt.PaymentID {
		log.FromContext(ctx).WithField("returned_payment_id", result.PaymentID).Error("Provider returned mismatched payment id")
		outcome := entity.ReservationOutcome{
			Kind:      entity.OutcomePaymentFailed,
			PaymentID: attempt.PaymentID,
			Message:   "Payment failed: provider returned a mismatched payment id.",
		}
		c.publish(ctx, entity.ReservationFailed{
			Header:  entity.NewEventHeader(),
			Attempt: attempt,
			Stage:   "payment",
			Message: "mismatched payment id",
		})
		return outcome, nil
	}

	return entity.ReservationOutcome{}, nil
}

func (c *Coordinator) publish(ctx context.Context, event any) {
	if err := c.eventBus.Publish(ctx, event); err != nil {
		log.FromContext(ctx).WithError(err).Error("Could not publish reservation event")
	}
}

func (c *Coordinator) countOutcome(outcome entity.ReservationOutcome) {
	if outcome.Kind == "" {
		return
	}
	metrics.ReservationAttempts.WithLabelValues(string(outcome.Kind)).Inc()
}
