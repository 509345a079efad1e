package event

import (
	"context"

	"boxoffice/entity"
)

type NotificationSink interface {
	Display(ctx context.Context, notification entity.Notification) error
}

type AttemptsRepository interface {
	Store(ctx context.Context, record entity.AttemptRecord) error
}

type SeatRefresher interface {
	Refresh(ctx context.Context) ([]entity.Seat, error)
}

type Handler struct {
	sink     NotificationSink
	attempts AttemptsRepository
	seats    SeatRefresher
}

func NewHandler(
	sink NotificationSink,
	attempts AttemptsRepository,
	seats SeatRefresher,
) Handler {
	if sink == nil {
		panic("missing notification sink")
	}
	if attempts == nil {
		panic("missing attempts repository")
	}
	if seats == nil {
		panic("missing seat refresher")
	}

	return Handler{
		sink:     sink,
		attempts: attempts,
		seats:    seats,
	}
}
