package log

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
)

// NewWatermill adapts a logrus logger to watermill's LoggerAdapter.
func NewWatermill(logger logrus.FieldLogger) watermill.LoggerAdapter {
	return watermillAdapter{logger: logger}
}

type watermillAdapter struct {
	logger logrus.FieldLogger
}

func (a watermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.withFields(fields).WithError(err).Error(msg)
}

func (a watermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.withFields(fields).Info(msg)
}

func (a watermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.withFields(fields).Debug(msg)
}

func (a watermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.withFields(fields).Debug(msg)
}

func (a watermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillAdapter{logger: a.withFields(fields)}
}

func (a watermillAdapter) withFields(fields watermill.LogFields) logrus.FieldLogger {
	return a.logger.WithFields(logrus.Fields(fields))
}

// CorrelationPublisherDecorator copies the correlation ID from the message
// context into metadata, so subscribers can restore it.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		if messages[i].Metadata.Get("correlation_id") != "" {
			continue
		}
		messages[i].Metadata.Set("correlation_id", CorrelationIDFromContext(messages[i].Context()))
	}
	return d.Publisher.Publish(topic, messages...)
}
