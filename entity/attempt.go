package entity

import (
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v3"
)

// PaymentAttempt is one payment→verify→book cycle. A fresh attempt gets a
// payment ID that is never reused, so a retried reservation can never be
// confused with an earlier charge.
type PaymentAttempt struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	EventID   string `json:"event_id"`
	SeatID    string `json:"seat_id"`
	SeatCode  string `json:"seat_code"`
	Amount    int    `json:"amount"`

	StartedAt time.Time `json:"started_at"`
}

func NewPaymentAttempt(eventID string, seat Seat, amount int) PaymentAttempt {
	now := time.Now()
	return PaymentAttempt{
		PaymentID: fmt.Sprintf("%d-%s", now.UnixMilli(), shortuuid.New()),
		OrderID:   fmt.Sprintf("order_%d_%s_%s", now.UnixMilli(), eventID, seat.ID),
		EventID:   eventID,
		SeatID:    seat.ID,
		SeatCode:  seat.Code,
		Amount:    amount,
		StartedAt: now.UTC(),
	}
}

// OrderName is the human-readable label sent to the payment provider.
func (a PaymentAttempt) OrderName() string {
	return fmt.Sprintf("Event %s - seat %s reservation", a.EventID, a.SeatCode)
}

type OutcomeKind string

const (
	OutcomeConfirmed          OutcomeKind = "confirmed"
	OutcomeUserCancelled      OutcomeKind = "user_cancelled"
	OutcomePaymentFailed      OutcomeKind = "payment_failed"
	OutcomeVerificationFailed OutcomeKind = "verification_failed"
	OutcomeConflict           OutcomeKind = "booking_conflict"
	OutcomeFailed             OutcomeKind = "booking_failed"
)

// ReservationOutcome is the terminal record of one attempt.
type ReservationOutcome struct {
	Kind      OutcomeKind
	PaymentID string

	// ReservationID is set only for OutcomeConfirmed.
	ReservationID string

	// Message preserves the raw provider/server reason for display.
	Message string
}
