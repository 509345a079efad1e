package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"boxoffice/entity"
)

// The storefront handlers proxy the box-office backend through the
// session-aware gateway, so every page shares the same cookie handling
// and 401 interception as the reservation surface.

func proxyError(err error) error {
	var backendErr *entity.BackendError
	if errors.As(err, &backendErr) {
		return echo.NewHTTPError(backendErr.StatusCode, backendErr.Message)
	}
	return err
}

func (s Server) GetEvents(c echo.Context) error {
	events, err := s.events.List(c.Request().Context())
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, events)
}

func (s Server) GetEvent(c echo.Context) error {
	event, err := s.events.Get(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (s Server) PostEvent(c echo.Context) error {
	if !s.isAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}

	var draft entity.EventDraft
	if err := c.Bind(&draft); err != nil {
		return err
	}

	event, err := s.events.Create(c.Request().Context(), draft)
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (s Server) DeleteEvent(c echo.Context) error {
	if !s.isAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}

	if err := s.events.Delete(c.Request().Context(), c.Param("event_id")); err != nil {
		return proxyError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s Server) GetEventReviews(c echo.Context) error {
	reviews, err := s.reviews.ListForEvent(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (s Server) GetReview(c echo.Context) error {
	review, err := s.reviews.Get(c.Request().Context(), c.Param("review_id"))
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (s Server) PostEventReview(c echo.Context) error {
	var review entity.Review
	if err := c.Bind(&review); err != nil {
		return err
	}
	review.EventID = c.Param("event_id")

	created, err := s.reviews.Create(c.Request().Context(), review)
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s Server) PutReview(c echo.Context) error {
	var review entity.Review
	if err := c.Bind(&review); err != nil {
		return err
	}
	review.ID = c.Param("review_id")

	if err := s.reviews.Update(c.Request().Context(), review); err != nil {
		return proxyError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s Server) DeleteReview(c echo.Context) error {
	if err := s.reviews.Delete(c.Request().Context(), c.Param("review_id")); err != nil {
		return proxyError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s Server) GetReviewComments(c echo.Context) error {
	comments, err := s.reviews.ListComments(c.Request().Context(), c.Param("review_id"))
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

func (s Server) PostReviewComment(c echo.Context) error {
	var comment entity.ReviewComment
	if err := c.Bind(&comment); err != nil {
		return err
	}
	comment.ReviewID = c.Param("review_id")

	created, err := s.reviews.AddComment(c.Request().Context(), comment)
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s Server) GetProfile(c echo.Context) error {
	profile, err := s.users.Profile(c.Request().Context())
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (s Server) PutProfile(c echo.Context) error {
	var update entity.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return err
	}

	profile, err := s.users.UpdateProfile(c.Request().Context(), update)
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (s Server) DeleteProfile(c echo.Context) error {
	if err := s.users.Withdraw(c.Request().Context()); err != nil {
		return proxyError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s Server) GetMyReservations(c echo.Context) error {
	reservations, err := s.reservations.MyReservations(c.Request().Context())
	if err != nil {
		return proxyError(err)
	}
	return c.JSON(http.StatusOK, reservations)
}

func (s Server) isAdmin() bool {
	who, ok := s.guard.Identity()
	return ok && who.Role == "ADMIN"
}
