package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

// NewEventProcessorConfig subscribes every handler through its own redis
// consumer group, so each handler gets its own delivery and retry state.
func NewEventProcessorConfig(rdb *redis.Client, watermillLogger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return eventProcessorConfig(
		func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        rdb,
				ConsumerGroup: "svc-boxoffice." + params.HandlerName,
			}, watermillLogger)
		},
		watermillLogger,
	)
}

// NewEventProcessorConfigWithSubscriber wires all handlers to a single
// provided subscriber. Used by tests with an in-memory pubsub.
func NewEventProcessorConfigWithSubscriber(sub message.Subscriber, watermillLogger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return eventProcessorConfig(
		func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return sub, nil
		},
		watermillLogger,
	)
}

func eventProcessorConfig(
	constructor func(cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error),
	watermillLogger watermill.LoggerAdapter,
) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		SubscriberConstructor: constructor,
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return "events." + params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: watermillLogger,
	}
}
