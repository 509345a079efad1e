package gateway

import (
	"context"
	"fmt"
	"net/http"

	"boxoffice/entity"
)

type EventsClient struct {
	backend *Backend
}

func NewEventsClient(backend *Backend) EventsClient {
	return EventsClient{backend: backend}
}

func (c EventsClient) List(ctx context.Context) ([]entity.EventInfo, error) {
	var events []entity.EventInfo
	if err := c.backend.do(ctx, "GET", "/api/events", nil, &events); err != nil {
		return nil, fmt.Errorf("could not fetch events: %w", err)
	}
	return events, nil
}

func (c EventsClient) Get(ctx context.Context, eventID string) (entity.EventInfo, error) {
	var event entity.EventInfo
	if err := c.backend.do(ctx, "GET", "/api/events/"+eventID, nil, &event); err != nil {
		return entity.EventInfo{}, fmt.Errorf("could not fetch event %s: %w", eventID, err)
	}
	return event, nil
}

func (c EventsClient) Create(ctx context.Context, draft entity.EventDraft) (entity.EventInfo, error) {
	var event entity.EventInfo
	if err := c.backend.do(ctx, "POST", "/api/events", draft, &event, http.StatusCreated); err != nil {
		return entity.EventInfo{}, fmt.Errorf("could not create event: %w", err)
	}
	return event, nil
}

func (c EventsClient) Delete(ctx context.Context, eventID string) error {
	if err := c.backend.do(ctx, "DELETE", "/api/events/"+eventID, nil, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("could not delete event %s: %w", eventID, err)
	}
	return nil
}
