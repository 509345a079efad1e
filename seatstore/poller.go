package seatstore

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
	"boxoffice/pkg/log"
)

// DefaultPollInterval is the accepted staleness window for seat data.
const DefaultPollInterval = 10 * time.Second

// Poller refreshes the store for the lifetime of the surface. A failed
// refresh keeps the previous snapshot, is reported to the notification
// sink as retryable, and does not stop the loop: the next tick is the
// retry.
type Poller struct {
	store    *Store
	eventBus *cqrs.EventBus
	interval time.Duration
}

func NewPoller(store *Store, eventBus *cqrs.EventBus, interval time.Duration) *Poller {
	if store == nil {
		panic("missing store")
	}
	if eventBus == nil {
		panic("missing eventBus")
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Poller{
		store:    store,
		eventBus: eventBus,
		interval: interval,
	}
}

func (p *Poller) Run(ctx context.Context) error {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if _, err := p.store.Refresh(ctx); err != nil {
		log.FromContext(ctx).WithError(err).Warn("Seat refresh failed, keeping previous snapshot")

		publishErr := p.eventBus.Publish(ctx, entity.SeatRefreshFailed{
			Header:  entity.NewEventHeader(),
			EventID: p.store.EventID(),
			Reason:  err.Error(),
		})
		if publishErr != nil {
			log.FromContext(ctx).WithError(publishErr).Error("Could not publish seat refresh failure")
		}
	}
}
