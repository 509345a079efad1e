package event_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/entity"
	"boxoffice/gateway"
	"boxoffice/pubsub/event"
	"boxoffice/seatstore"
)

type sinkMock struct {
	mu    sync.Mutex
	shown []entity.Notification
}

func (m *sinkMock) Display(ctx context.Context, n entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, n)
	return nil
}

type attemptsMock struct {
	mu      sync.Mutex
	records []entity.AttemptRecord
}

func (m *attemptsMock) Store(ctx context.Context, record entity.AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func newHandler(t *testing.T) (event.Handler, *sinkMock, *attemptsMock, *gateway.SeatsMock) {
	t.Helper()

	sink := &sinkMock{}
	attempts := &attemptsMock{}
	seats := &gateway.SeatsMock{Seats: []entity.Seat{{ID: "s-1", Code: "A1"}}}
	store := seatstore.New(seats, "ev-1")

	return event.NewHandler(sink, attempts, store), sink, attempts, seats
}

func attempt() entity.PaymentAttempt {
	return entity.PaymentAttempt{
		PaymentID: "p-1",
		OrderID:   "order_1_ev-1_s-1",
		EventID:   "ev-1",
		SeatID:    "s-1",
		SeatCode:  "A1",
		Amount:    1000,
	}
}

func TestNotifyReservationConfirmed_ClosesSurface(t *testing.T) {
	handler, sink, _, _ := newHandler(t)

	err := handler.NotifyReservationConfirmedHandler().Handle(context.Background(), &entity.ReservationConfirmed{
		Header:        entity.NewEventHeader(),
		ReservationID: "r-1",
		Attempt:       attempt(),
	})
	require.NoError(t, err)

	require.Len(t, sink.shown, 1)
	assert.True(t, sink.shown[0].CloseSurface)
	assert.False(t, sink.shown[0].IsError)
}

func TestNotifyReservationConflicted_KeepsSurfaceOpen(t *testing.T) {
	handler, sink, _, _ := newHandler(t)

	err := handler.NotifyReservationConflictedHandler().Handle(context.Background(), &entity.ReservationConflicted{
		Header:  entity.NewEventHeader(),
		Attempt: attempt(),
	})
	require.NoError(t, err)

	require.Len(t, sink.shown, 1)
	assert.True(t, sink.shown[0].IsError)
	assert.False(t, sink.shown[0].CloseSurface)
}

func TestNotifyReservationFailed_TitlePerStage(t *testing.T) {
	handler, sink, _, _ := newHandler(t)

	for _, stage := range []string{"payment", "verify", "book"} {
		err := handler.NotifyReservationFailedHandler().Handle(context.Background(), &entity.ReservationFailed{
			Header:  entity.NewEventHeader(),
			Attempt: attempt(),
			Stage:   stage,
		})
		require.NoError(t, err)
	}

	require.Len(t, sink.shown, 3)
	assert.Equal(t, "Payment failed", sink.shown[0].Title)
	assert.Equal(t, "Payment verification failed", sink.shown[1].Title)
	assert.Equal(t, "Booking failed", sink.shown[2].Title)
	for _, n := range sink.shown {
		assert.True(t, n.IsError)
		assert.False(t, n.CloseSurface)
	}
}

func TestNotifySessionExpired_CloseFlagFollowsEvent(t *testing.T) {
	handler, sink, _, _ := newHandler(t)

	for _, closeSurface := range []bool{true, false} {
		err := handler.NotifySessionExpiredHandler().Handle(context.Background(), &entity.SessionExpired{
			Header:       entity.NewEventHeader(),
			Reason:       "expired",
			CloseSurface: closeSurface,
		})
		require.NoError(t, err)
	}

	require.Len(t, sink.shown, 2)
	assert.True(t, sink.shown[0].CloseSurface)
	assert.False(t, sink.shown[1].CloseSurface)
}

func TestJournalConflicted_FlagsReconciliation(t *testing.T) {
	handler, _, attempts, _ := newHandler(t)

	err := handler.JournalConflictedHandler().Handle(context.Background(), &entity.ReservationConflicted{
		Header:  entity.NewEventHeader(),
		Attempt: attempt(),
		Message: "seat already reserved",
	})
	require.NoError(t, err)

	require.Len(t, attempts.records, 1)
	record := attempts.records[0]
	assert.Equal(t, string(entity.OutcomeConflict), record.Outcome)
	assert.True(t, record.RequiresReconciliation)
	assert.Equal(t, "p-1", record.PaymentID)
}

func TestJournalFailed_ReconciliationOnlyAfterCharge(t *testing.T) {
	handler, _, attempts, _ := newHandler(t)

	for _, stage := range []string{"payment", "verify", "book"} {
		err := handler.JournalFailedHandler().Handle(context.Background(), &entity.ReservationFailed{
			Header:  entity.NewEventHeader(),
			Attempt: attempt(),
			Stage:   stage,
		})
		require.NoError(t, err)
	}

	require.Len(t, attempts.records, 3)
	assert.False(t, attempts.records[0].RequiresReconciliation, "nothing was charged on a payment failure")
	assert.True(t, attempts.records[1].RequiresReconciliation)
	assert.True(t, attempts.records[2].RequiresReconciliation)
}

func TestRefreshSeatsOnConfirmed(t *testing.T) {
	handler, _, _, seats := newHandler(t)

	err := handler.RefreshSeatsOnConfirmedHandler().Handle(context.Background(), &entity.ReservationConfirmed{
		Header:  entity.NewEventHeader(),
		Attempt: attempt(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, seats.Calls())
}
