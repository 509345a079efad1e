package entity

import "time"

// AttemptRecord is the journal row written for each terminal attempt.
// Conflict rows keep RequiresReconciliation set until the manual refund
// process clears them; nothing in this client triggers refunds.
type AttemptRecord struct {
	PaymentID     string `json:"payment_id" db:"payment_id"`
	OrderID       string `json:"order_id" db:"order_id"`
	EventID       string `json:"event_id" db:"event_id"`
	SeatID        string `json:"seat_id" db:"seat_id"`
	SeatCode      string `json:"seat_code" db:"seat_code"`
	Amount        int    `json:"amount" db:"amount"`
	Outcome       string `json:"outcome" db:"outcome"`
	ReservationID string `json:"reservation_id" db:"reservation_id"`
	Message       string `json:"message" db:"message"`

	RequiresReconciliation bool      `json:"requires_reconciliation" db:"requires_reconciliation"`
	OccurredAt             time.Time `json:"occurred_at" db:"occurred_at"`
}
