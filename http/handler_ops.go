package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s Server) GetOpsAttempts(c echo.Context) error {
	attempts, err := s.attemptsRepo.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attempts)
}

// GetOpsAttemptsReconciliation lists paid-but-unbooked attempts for the
// support team. Refunds themselves happen outside this service.
func (s Server) GetOpsAttemptsReconciliation(c echo.Context) error {
	attempts, err := s.attemptsRepo.FindRequiringReconciliation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attempts)
}
