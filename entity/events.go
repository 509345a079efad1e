package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// ReservationConfirmed is published once per attempt that ended with a
// booked seat.
type ReservationConfirmed struct {
	Header EventHeader `json:"header"`

	ReservationID string         `json:"reservation_id"`
	Attempt       PaymentAttempt `json:"attempt"`
	Message       string         `json:"message"`
}

// ReservationConflicted is published when the payment succeeded but the
// seat was taken between verification and booking. Money moved, no seat
// was granted; the record must never be silently dropped.
type ReservationConflicted struct {
	Header EventHeader `json:"header"`

	Attempt PaymentAttempt `json:"attempt"`
	Message string         `json:"message"`
}

// ReservationFailed covers terminal failures that are not conflicts.
// Stage is one of "payment", "verify", "book".
type ReservationFailed struct {
	Header EventHeader `json:"header"`

	Attempt PaymentAttempt `json:"attempt"`
	Stage   string         `json:"stage"`
	Message string         `json:"message"`
}

// PaymentCancelled is published when the customer abandoned the provider
// checkout. The attempt is discarded without any backend call.
type PaymentCancelled struct {
	Header EventHeader `json:"header"`

	Attempt PaymentAttempt `json:"attempt"`
}

// SessionExpired is published exactly once per process when the session
// guard flips to invalid.
type SessionExpired struct {
	Header EventHeader `json:"header"`

	Reason       string `json:"reason"`
	CloseSurface bool   `json:"close_surface"`
}

// SeatRefreshFailed is published on a failed seat snapshot refresh. The
// poll interval is the retry; the previous snapshot stays in place.
type SeatRefreshFailed struct {
	Header EventHeader `json:"header"`

	EventID string `json:"event_id"`
	Reason  string `json:"reason"`
}
