package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"boxoffice/entity"
)

type seatsResponse struct {
	EventID        string        `json:"event_id"`
	Seats          []entity.Seat `json:"seats"`
	SelectedSeatID string        `json:"selected_seat_id,omitempty"`
}

type reserveResponse struct {
	Outcome       string `json:"outcome"`
	PaymentID     string `json:"payment_id,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`
	Message       string `json:"message,omitempty"`
	State         string `json:"state"`
}

type sessionResponse struct {
	Valid    bool   `json:"valid"`
	UserID   string `json:"user_id,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (s Server) GetSeats(c echo.Context) error {
	response := seatsResponse{
		EventID: s.seats.EventID(),
		Seats:   s.seats.Seats(),
	}
	if seat, ok := s.seats.Selected(); ok {
		response.SelectedSeatID = seat.ID
	}

	return c.JSON(http.StatusOK, response)
}

func (s Server) PostSelectSeat(c echo.Context) error {
	if !s.guard.Valid() {
		return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}

	err := s.seats.Select(c.Param("seat_id"))
	if err != nil {
		if errors.Is(err, entity.ErrSeatReserved) {
			return echo.NewHTTPError(http.StatusConflict, "seat is already reserved")
		}
		if errors.Is(err, entity.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown seat")
		}
		return err
	}

	return s.GetSeats(c)
}

func (s Server) DeleteSelection(c echo.Context) error {
	s.seats.Deselect()
	return c.NoContent(http.StatusNoContent)
}

// PostReserve runs the whole attempt synchronously and reports the
// terminal outcome. Business failures map to statuses; they are not
// echo errors because the attempt itself worked as designed.
func (s Server) PostReserve(c echo.Context) error {
	outcome, err := s.reserver.Reserve(c.Request().Context())
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrSessionInvalid):
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		case errors.Is(err, entity.ErrNoSeatSelected):
			return echo.NewHTTPError(http.StatusBadRequest, "no seat selected")
		case errors.Is(err, entity.ErrAttemptInFlight):
			return echo.NewHTTPError(http.StatusConflict, "a reservation attempt is already in progress")
		}
		return err
	}

	response := reserveResponse{
		Outcome:       string(outcome.Kind),
		PaymentID:     outcome.PaymentID,
		ReservationID: outcome.ReservationID,
		Message:       outcome.Message,
		State:         string(s.reserver.State()),
	}

	status := http.StatusOK
	switch outcome.Kind {
	case entity.OutcomeConfirmed:
		status = http.StatusCreated
	case entity.OutcomeConflict:
		status = http.StatusConflict
	case entity.OutcomePaymentFailed, entity.OutcomeVerificationFailed, entity.OutcomeFailed:
		status = http.StatusBadGateway
	}

	return c.JSON(status, response)
}

func (s Server) GetNotifications(c echo.Context) error {
	notifications := s.notifications.Drain()
	if notifications == nil {
		notifications = []entity.Notification{}
	}
	return c.JSON(http.StatusOK, notifications)
}

func (s Server) GetSession(c echo.Context) error {
	response := sessionResponse{Valid: s.guard.Valid()}
	if who, ok := s.guard.Identity(); ok {
		response.UserID = who.UserID
		response.Nickname = who.Nickname
		response.Role = who.Role
	}

	return c.JSON(http.StatusOK, response)
}
