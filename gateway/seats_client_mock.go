package gateway

import (
	"context"
	"sync"

	"boxoffice/entity"
)

type SeatsMock struct {
	mock sync.Mutex

	Seats []entity.Seat
	Err   error

	ListCalls int
}

func (m *SeatsMock) List(ctx context.Context, eventID string) ([]entity.Seat, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.ListCalls++

	if m.Err != nil {
		return nil, m.Err
	}

	seats := make([]entity.Seat, len(m.Seats))
	copy(seats, m.Seats)
	return seats, nil
}

// SetSeats replaces the snapshot returned by subsequent List calls.
func (m *SeatsMock) SetSeats(seats []entity.Seat) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.Seats = make([]entity.Seat, len(seats))
	copy(m.Seats, seats)
}

func (m *SeatsMock) Calls() int {
	m.mock.Lock()
	defer m.mock.Unlock()
	return m.ListCalls
}
