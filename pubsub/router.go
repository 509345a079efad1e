package pubsub

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"boxoffice/pubsub/event"
)

func NewWatermillRouter(
	eventProcessorConfig cqrs.EventProcessorConfig,
	eventHandler event.Handler,
	watermillLogger watermill.LoggerAdapter,
) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("could not create router: %w", err)
	}

	useMiddlewares(router, watermillLogger)

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		return nil, fmt.Errorf("could not create event processor: %w", err)
	}

	err = eventProcessor.AddHandlers(
		eventHandler.NotifyReservationConfirmedHandler(),
		eventHandler.NotifyReservationConflictedHandler(),
		eventHandler.NotifyReservationFailedHandler(),
		eventHandler.NotifyPaymentCancelledHandler(),
		eventHandler.NotifySessionExpiredHandler(),
		eventHandler.NotifySeatRefreshFailedHandler(),
		eventHandler.JournalConfirmedHandler(),
		eventHandler.JournalConflictedHandler(),
		eventHandler.JournalFailedHandler(),
		eventHandler.RefreshSeatsOnConfirmedHandler(),
		eventHandler.RefreshSeatsOnConflictHandler(),
	)
	if err != nil {
		return nil, fmt.Errorf("could not add handlers to event processor: %w", err)
	}

	return router, nil
}
