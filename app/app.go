package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	dbLib "boxoffice/db"
	"boxoffice/db/attempts"
	"boxoffice/gateway"
	"boxoffice/http"
	"boxoffice/notification"
	"boxoffice/pkg/log"
	"boxoffice/pubsub"
	"boxoffice/pubsub/bus"
	"boxoffice/pubsub/event"
	"boxoffice/reservation"
	"boxoffice/seatstore"
	"boxoffice/session"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Config struct {
	Addr         string
	BackendAddr  string
	ProviderAddr string
	SessionToken string

	EventID string
	Popup   bool

	ChannelKey  string
	StoreID     string
	TicketPrice int
	Currency    string
	PayMethod   string

	PollInterval time.Duration
}

type App struct {
	db              *sqlx.DB
	watermillRouter *message.Router
	httpServer      *http.Server
	guard           *session.Guard
	poller          *seatstore.Poller
	traceProvider   *tracesdk.TracerProvider
}

func New(
	cfg Config,
	db *sqlx.DB,
	redisClient *redis.Client,
	traceProvider *tracesdk.TracerProvider,
) App {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	var redisPublisher message.Publisher
	redisPublisher = pubsub.NewRedisPublisher(redisClient, watermillLogger)
	redisPublisher = log.CorrelationPublisherDecorator{Publisher: redisPublisher}

	eventBus, err := bus.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	// The guard is constructed after the HTTP client whose auth failures
	// feed it, so the hook goes through a late-bound pointer.
	var guard *session.Guard

	backendClient := gateway.NewBackendHTTPClient(cfg.SessionToken, func() {
		if guard != nil {
			guard.Invalidate(context.Background(), "Your login session has expired. Please log in again.")
		}
	})
	backend := gateway.NewBackend(cfg.BackendAddr, backendClient)

	identityClient := gateway.NewIdentityClient(backend)
	seatsClient := gateway.NewSeatsClient(backend)
	reservationsClient := gateway.NewReservationsClient(backend)
	eventsClient := gateway.NewEventsClient(backend)
	reviewsClient := gateway.NewReviewsClient(backend)
	usersClient := gateway.NewUsersClient(backend)

	providerClient := gateway.NewPaymentProviderClient(cfg.ProviderAddr, gateway.NewProviderHTTPClient())

	surfaceKind := session.SurfacePage
	if cfg.Popup {
		surfaceKind = session.SurfacePopup
	}
	guard = session.NewGuard(identityClient, eventBus, surfaceKind)

	store := seatstore.New(seatsClient, cfg.EventID)
	poller := seatstore.NewPoller(store, eventBus, cfg.PollInterval)

	coordinator := reservation.NewCoordinator(
		store,
		guard,
		providerClient,
		reservationsClient,
		eventBus,
		reservation.Config{
			ChannelKey:  cfg.ChannelKey,
			StoreID:     cfg.StoreID,
			TicketPrice: cfg.TicketPrice,
			Currency:    cfg.Currency,
			PayMethod:   cfg.PayMethod,
		},
	)

	notifications := notification.NewBuffer()
	attemptsRepo := attempts.NewPostgresRepository(db)

	eventsHandler := event.NewHandler(
		notifications,
		attemptsRepo,
		store,
	)

	eventProcessorConfig := pubsub.NewEventProcessorConfig(redisClient, watermillLogger)

	watermillRouter, err := pubsub.NewWatermillRouter(
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(
		cfg.Addr,
		store,
		coordinator,
		guard,
		notifications,
		attemptsRepo,
		eventsClient,
		reviewsClient,
		usersClient,
		reservationsClient,
	)

	return App{
		db:              db,
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
		guard:           guard,
		poller:          poller,
		traceProvider:   traceProvider,
	}
}

func (s App) Run(ctx context.Context) error {
	if err := dbLib.InitializeDatabaseSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return s.traceProvider.Shutdown(context.Background())
	})

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// one session check at startup; a failure is surfaced via the
		// notification channel, the process keeps serving the surface
		<-s.watermillRouter.Running()

		if err := s.guard.Check(ctx); err != nil {
			log.FromContext(ctx).WithError(err).Warn("Starting with an invalid session")
		}
		return nil
	})

	g.Go(func() error {
		<-s.watermillRouter.Running()
		return s.poller.Run(ctx)
	})

	g.Go(func() error {
		// we don't want to start HTTP server before Watermill router (so app won't be healthy before it's ready)
		<-s.watermillRouter.Running()

		err := s.httpServer.Run(ctx)
		if err != nil {
			return err
		}

		return nil
	})

	return g.Wait()
}
