package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"boxoffice/app"
	"boxoffice/pkg/log"
	"boxoffice/tracing"
)

type options struct {
	Addr         string `long:"addr" env:"ADDR" default:":8080" description:"storefront listen address"`
	BackendAddr  string `long:"backend-addr" env:"BACKEND_ADDR" default:"http://localhost:8090" description:"box-office backend base URL"`
	ProviderAddr string `long:"provider-addr" env:"PROVIDER_ADDR" required:"true" description:"payment provider base URL"`
	SessionToken string `long:"session-token" env:"SESSION_TOKEN" required:"true" description:"customer session cookie value"`

	EventID string `long:"event-id" env:"EVENT_ID" required:"true" description:"event whose seat map this surface serves"`
	Popup   bool   `long:"popup" env:"POPUP" description:"surface runs as a popup and may be asked to close"`

	ChannelKey  string `long:"channel-key" env:"CHANNEL_KEY" required:"true" description:"payment provider channel key"`
	StoreID     string `long:"store-id" env:"STORE_ID" required:"true" description:"payment provider store id"`
	TicketPrice int    `long:"ticket-price" env:"TICKET_PRICE" default:"1000"`
	Currency    string `long:"currency" env:"CURRENCY" default:"KRW"`
	PayMethod   string `long:"pay-method" env:"PAY_METHOD" default:"CARD"`

	PollInterval time.Duration `long:"poll-interval" env:"POLL_INTERVAL" default:"10s" description:"seat map refresh interval"`

	RedisAddr      string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379"`
	PostgresURL    string `long:"postgres-url" env:"POSTGRES_URL" required:"true"`
	JaegerEndpoint string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Init(logrus.InfoLevel)

	traceProvider := tracing.ConfigureTraceProvider(opts.JaegerEndpoint, opts.BackendAddr)

	sqlDB, err := otelsql.Open("postgres", opts.PostgresURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		panic(err)
	}
	dbConn := sqlx.NewDb(sqlDB, "postgres")
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: opts.RedisAddr,
	})
	defer redisClient.Close()

	application := app.New(
		app.Config{
			Addr:         opts.Addr,
			BackendAddr:  opts.BackendAddr,
			ProviderAddr: opts.ProviderAddr,
			SessionToken: opts.SessionToken,
			EventID:      opts.EventID,
			Popup:        opts.Popup,
			ChannelKey:   opts.ChannelKey,
			StoreID:      opts.StoreID,
			TicketPrice:  opts.TicketPrice,
			Currency:     opts.Currency,
			PayMethod:    opts.PayMethod,
			PollInterval: opts.PollInterval,
		},
		dbConn,
		redisClient,
		traceProvider,
	)

	if err := application.Run(ctx); err != nil {
		panic(err)
	}
}
