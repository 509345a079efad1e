package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrSeatReserved is returned when selecting a seat the server has
	// already marked reserved.
	ErrSeatReserved = errors.New("seat is already reserved")

	// ErrNoSeatSelected is returned when a reservation is started without
	// a selected seat.
	ErrNoSeatSelected = errors.New("no seat selected")

	// ErrAttemptInFlight is returned when a reservation is started while
	// another attempt is still running. The running attempt is unaffected.
	ErrAttemptInFlight = errors.New("reservation attempt already in flight")

	// ErrSessionInvalid is returned once the session guard has flipped;
	// every reservation action is a no-op from then on.
	ErrSessionInvalid = errors.New("session is not valid")

	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// BackendError preserves the raw status and message of a failed backend
// call for display.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}
