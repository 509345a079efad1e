package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"boxoffice/entity"
	"boxoffice/pkg/log"
	"boxoffice/reservation"
)

type SeatStore interface {
	Seats() []entity.Seat
	Selected() (entity.Seat, bool)
	Select(seatID string) error
	Deselect()
	Refresh(ctx context.Context) ([]entity.Seat, error)
	EventID() string
}

type Reserver interface {
	Reserve(ctx context.Context) (entity.ReservationOutcome, error)
	State() reservation.State
}

type SessionGuard interface {
	Valid() bool
	Identity() (entity.Identity, bool)
}

type Notifications interface {
	Drain() []entity.Notification
}

type AttemptsRepository interface {
	FindAll(ctx context.Context) ([]entity.AttemptRecord, error)
	FindRequiringReconciliation(ctx context.Context) ([]entity.AttemptRecord, error)
}

type EventsGateway interface {
	List(ctx context.Context) ([]entity.EventInfo, error)
	Get(ctx context.Context, eventID string) (entity.EventInfo, error)
	Create(ctx context.Context, draft entity.EventDraft) (entity.EventInfo, error)
	Delete(ctx context.Context, eventID string) error
}

type ReviewsGateway interface {
	ListForEvent(ctx context.Context, eventID string) ([]entity.Review, error)
	Get(ctx context.Context, reviewID string) (entity.Review, error)
	Create(ctx context.Context, review entity.Review) (entity.Review, error)
	Update(ctx context.Context, review entity.Review) error
	Delete(ctx context.Context, reviewID string) error
	ListComments(ctx context.Context, reviewID string) ([]entity.ReviewComment, error)
	AddComment(ctx context.Context, comment entity.ReviewComment) (entity.ReviewComment, error)
}

type UsersGateway interface {
	Profile(ctx context.Context) (entity.Profile, error)
	UpdateProfile(ctx context.Context, update entity.ProfileUpdate) (entity.Profile, error)
	Withdraw(ctx context.Context) error
}

type ReservationsGateway interface {
	MyReservations(ctx context.Context) ([]entity.ReservationRecord, error)
}

type Server struct {
	addr          string
	e             *echo.Echo
	seats         SeatStore
	reserver      Reserver
	guard         SessionGuard
	notifications Notifications
	attemptsRepo  AttemptsRepository
	events        EventsGateway
	reviews       ReviewsGateway
	users         UsersGateway
	reservations  ReservationsGateway
}

func NewServer(
	addr string,
	seats SeatStore,
	reserver Reserver,
	guard SessionGuard,
	notifications Notifications,
	attemptsRepo AttemptsRepository,
	events EventsGateway,
	reviews ReviewsGateway,
	users UsersGateway,
	reservations ReservationsGateway,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(otelecho.Middleware("boxoffice"))

	server := &Server{
		addr:          addr,
		e:             e,
		seats:         seats,
		reserver:      reserver,
		guard:         guard,
		notifications: notifications,
		attemptsRepo:  attemptsRepo,
		events:        events,
		reviews:       reviews,
		users:         users,
		reservations:  reservations,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/surface/seats", server.GetSeats)
	e.POST("/surface/seats/:seat_id/select", server.PostSelectSeat)
	e.DELETE("/surface/seats/selection", server.DeleteSelection)
	e.POST("/surface/reserve", server.PostReserve)
	e.GET("/surface/notifications", server.GetNotifications)
	e.GET("/surface/session", server.GetSession)

	e.GET("/events", server.GetEvents)
	e.GET("/events/:event_id", server.GetEvent)
	e.POST("/events", server.PostEvent)
	e.DELETE("/events/:event_id", server.DeleteEvent)

	e.GET("/events/:event_id/reviews", server.GetEventReviews)
	e.POST("/events/:event_id/reviews", server.PostEventReview)
	e.GET("/reviews/:review_id", server.GetReview)
	e.PUT("/reviews/:review_id", server.PutReview)
	e.DELETE("/reviews/:review_id", server.DeleteReview)
	e.GET("/reviews/:review_id/comments", server.GetReviewComments)
	e.POST("/reviews/:review_id/comments", server.PostReviewComment)

	e.GET("/profile", server.GetProfile)
	e.PUT("/profile", server.PutProfile)
	e.DELETE("/profile", server.DeleteProfile)
	e.GET("/reservations/my", server.GetMyReservations)

	e.GET("/ops/attempts", server.GetOpsAttempts)
	e.GET("/ops/attempts/reconciliation", server.GetOpsAttemptsReconciliation)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(ctx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the underlying echo handler for tests.
func (s Server) Handler() http.Handler {
	return s.e
}
