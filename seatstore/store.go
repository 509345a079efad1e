// Package seatstore keeps the local view of one event's seats and the
// customer's current selection. The server is the only authority on
// reservation state: every refresh replaces the whole snapshot, and the
// store never marks a seat reserved on its own.
package seatstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"boxoffice/entity"
	"boxoffice/metrics"
)

type Gateway interface {
	List(ctx context.Context, eventID string) ([]entity.Seat, error)
}

type Store struct {
	gateway Gateway
	eventID string

	mu         sync.RWMutex
	seats      []entity.Seat
	selectedID string
}

func New(gateway Gateway, eventID string) *Store {
	if gateway == nil {
		panic("missing gateway")
	}
	if eventID == "" {
		panic("missing eventID")
	}

	return &Store{
		gateway: gateway,
		eventID: eventID,
	}
}

func (s *Store) EventID() string {
	return s.eventID
}

// Refresh fetches the authoritative seat list and replaces the snapshot
// atomically. Concurrent refreshes are allowed; the last one to complete
// wins, which is safe because every response is a full snapshot. On
// error the previous snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) ([]entity.Seat, error) {
	seats, err := s.gateway.List(ctx, s.eventID)
	if err != nil {
		metrics.SeatRefreshes.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("could not refresh seats: %w", err)
	}
	metrics.SeatRefreshes.WithLabelValues("ok").Inc()

	sort.Slice(seats, func(i, j int) bool {
		return seats[i].Code < seats[j].Code
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seats = seats
	if s.selectedID != "" && !selectable(seats, s.selectedID) {
		s.selectedID = ""
	}

	result := make([]entity.Seat, len(seats))
	copy(result, seats)
	return result, nil
}

func selectable(seats []entity.Seat, seatID string) bool {
	for _, seat := range seats {
		if seat.ID == seatID {
			return !seat.Reserved
		}
	}
	return false
}

// Seats returns a copy of the current snapshot.
func (s *Store) Seats() []entity.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seats := make([]entity.Seat, len(s.seats))
	copy(seats, s.seats)
	return seats
}

// Select toggles the selection: selecting the selected seat again
// deselects it. Selecting a reserved seat fails with ErrSeatReserved and
// leaves the current selection untouched.
func (s *Store) Select(seatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seat := range s.seats {
		if seat.ID != seatID {
			continue
		}
		if seat.Reserved {
			return entity.ErrSeatReserved
		}
		if s.selectedID == seatID {
			s.selectedID = ""
		} else {
			s.selectedID = seatID
		}
		return nil
	}

	return fmt.Errorf("seat %s: %w", seatID, entity.ErrNotFound)
}

func (s *Store) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// Selected returns the currently selected seat, if any.
func (s *Store) Selected() (entity.Seat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == "" {
		return entity.Seat{}, false
	}
	for _, seat := range s.seats {
		if seat.ID == s.selectedID {
			return seat, true
		}
	}
	return entity.Seat{}, false
}

func (s *Store) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}
