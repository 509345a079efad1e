// Package log wires logrus into context propagation. Every request and
// message handler gets a logger carrying the correlation ID, so a single
// reservation attempt can be followed across the HTTP surface, the
// gateways and the event handlers.
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	correlationIDKey
)

func Init(level logrus.Level) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

// FromContext returns the logger stored in ctx, falling back to the
// standard logger (annotated with the correlation ID if one is present).
func FromContext(ctx context.Context) logrus.FieldLogger {
	if logger, ok := ctx.Value(loggerKey).(logrus.FieldLogger); ok {
		return logger
	}

	logger := logrus.StandardLogger()
	if cid := CorrelationIDFromContext(ctx); cid != "" {
		return logger.WithField("correlation_id", cid)
	}
	return logger
}

func ToContext(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

func CorrelationIDFromContext(ctx context.Context) string {
	cid, _ := ctx.Value(correlationIDKey).(string)
	return cid
}
