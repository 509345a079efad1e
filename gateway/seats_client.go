package gateway

import (
	"context"
	"fmt"

	"boxoffice/entity"
)

type SeatsClient struct {
	backend *Backend
}

func NewSeatsClient(backend *Backend) SeatsClient {
	return SeatsClient{backend: backend}
}

// List fetches the full authoritative seat list for an event. The
// response is always a complete snapshot, never a delta.
func (c SeatsClient) List(ctx context.Context, eventID string) ([]entity.Seat, error) {
	var seats []entity.Seat
	if err := c.backend.do(ctx, "GET", "/api/events/"+eventID+"/seats", nil, &seats); err != nil {
		return nil, fmt.Errorf("could not fetch seats for event %s: %w", eventID, err)
	}
	return seats, nil
}
