package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"boxoffice/entity"
)

type ReservationsClient struct {
	backend *Backend
}

func NewReservationsClient(backend *Backend) ReservationsClient {
	return ReservationsClient{backend: backend}
}

type reservationPayload struct {
	EventID   string `json:"event_id"`
	SeatID    string `json:"seat_id"`
	PaymentID string `json:"payment_id"`
	Amount    int    `json:"amount"`
}

func payloadFromAttempt(attempt entity.PaymentAttempt) reservationPayload {
	return reservationPayload{
		EventID:   attempt.EventID,
		SeatID:    attempt.SeatID,
		PaymentID: attempt.PaymentID,
		Amount:    attempt.Amount,
	}
}

// VerifyPayment submits the payment result for backend-side verification.
// Any non-success is fatal for the attempt: an unverified payment could
// be forged client-side, so booking must not proceed.
func (c ReservationsClient) VerifyPayment(ctx context.Context, attempt entity.PaymentAttempt) error {
	if err := c.backend.do(ctx, "POST", "/api/payment/complete", payloadFromAttempt(attempt), nil); err != nil {
		return fmt.Errorf("payment verification rejected: %w", err)
	}
	return nil
}

// Book submits the booking request for a payment that was just verified.
// A 409 means the seat was taken between verification and booking; the
// caller must surface it as paid-but-unbooked, never retry it.
func (c ReservationsClient) Book(ctx context.Context, attempt entity.PaymentAttempt) (entity.BookingResult, error) {
	var result entity.BookingResult
	err := c.backend.do(ctx, "POST", "/api/reservations", payloadFromAttempt(attempt), &result, http.StatusCreated)
	if err != nil {
		var backendErr *entity.BackendError
		if errors.As(err, &backendErr) && backendErr.StatusCode == http.StatusConflict {
			return entity.BookingResult{}, fmt.Errorf("%s: %w", backendErr.Message, entity.ErrConflict)
		}
		return entity.BookingResult{}, fmt.Errorf("could not book seat: %w", err)
	}

	return result, nil
}

// MyReservations lists the customer's confirmed reservations.
func (c ReservationsClient) MyReservations(ctx context.Context) ([]entity.ReservationRecord, error) {
	var records []entity.ReservationRecord
	if err := c.backend.do(ctx, "GET", "/api/reservations/my", nil, &records); err != nil {
		return nil, fmt.Errorf("could not fetch reservations: %w", err)
	}
	return records, nil
}
