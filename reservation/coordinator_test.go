package reservation_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/entity"
	"boxoffice/gateway"
	"boxoffice/reservation"
	"boxoffice/seatstore"
)

type guardStub struct {
	valid bool
}

func (g guardStub) Valid() bool { return g.valid }

func (g guardStub) Identity() (entity.Identity, bool) {
	return entity.Identity{UserID: "u-1", Nickname: "jade"}, g.valid
}

type capturingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for range messages {
		p.topics = append(p.topics, topic)
	}
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func newTestEventBus(t *testing.T, publisher message.Publisher) *cqrs.EventBus {
	t.Helper()

	bus, err := cqrs.NewEventBusWithConfig(publisher, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return "events." + params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: watermill.NopLogger{},
	})
	require.NoError(t, err)

	return bus
}

func newSelectedStore(t *testing.T) *seatstore.Store {
	t.Helper()

	seats := &gateway.SeatsMock{
		Seats: []entity.Seat{
			{ID: "s-99", Code: "A1", EventID: "ev-1"},
			{ID: "s-2", Code: "A2", Reserved: true, EventID: "ev-1"},
		},
	}
	store := seatstore.New(seats, "ev-1")
	_, err := store.Refresh(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Select("s-99"))

	return store
}

func testConfig() reservation.Config {
	return reservation.Config{
		ChannelKey:  "channel-key-test",
		StoreID:     "store-test",
		TicketPrice: 1000,
		Currency:    "KRW",
		PayMethod:   "CARD",
	}
}

func TestCoordinator_Confirmed(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{}
	backend := &gateway.ReservationsMock{
		BookResult: entity.BookingResult{ReservationID: "r-1", Message: "reserved"},
	}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	outcome, err := coordinator.Reserve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeConfirmed, outcome.Kind)
	assert.Equal(t, "r-1", outcome.ReservationID)
	assert.Equal(t, reservation.StateConfirmed, coordinator.State())

	assert.Equal(t, 1, backend.VerifyCount())
	assert.Equal(t, 1, backend.BookCount())

	_, selected := store.Selected()
	assert.False(t, selected, "selection should clear after confirmation")

	assert.Contains(t, publisher.Topics(), "events.ReservationConfirmed")
}

func TestCoordinator_PaymentRequestCarriesAttempt(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{}
	backend := &gateway.ReservationsMock{}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	_, err := coordinator.Reserve(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, provider.RequestCount())
	request := provider.Requests[0]
	assert.Equal(t, "channel-key-test", request.ChannelKey)
	assert.Equal(t, "store-test", request.StoreID)
	assert.Equal(t, 1000, request.Amount)
	assert.Equal(t, "KRW", request.Currency)
	assert.NotEmpty(t, request.PaymentID)
	assert.Contains(t, request.OrderID, "ev-1")
	assert.Contains(t, request.OrderID, "s-99")
}

func TestCoordinator_UserCancelled(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{
		Result: entity.PaymentResult{Code: entity.PaymentCancelledCode, Message: "cancelled"},
	}
	backend := &gateway.ReservationsMock{}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	outcome, err := coordinator.Reserve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeUserCancelled, outcome.Kind)
	assert.Equal(t, reservation.StateSeatSelected, coordinator.State())

	assert.Equal(t, 0, backend.VerifyCount(), "no backend call on cancellation")
	assert.Equal(t, 0, backend.BookCount())

	_, selected := store.Selected()
	assert.True(t, selected, "selection survives cancellation")

	assert.Contains(t, publisher.Topics(), "events.PaymentCancelled")
}

func TestCoordinator_PaymentDeclined(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{
		Result: entity.PaymentResult{Code: "INSUFFICIENT_FUNDS", Message: "declined"},
	}
	backend := &gateway.ReservationsMock{}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	outcome, err := coordinator.Reserve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomePaymentFailed, outcome.Kind)
	assert.Equal(t, 0, backend.VerifyCount())
	assert.Contains(t, publisher.Topics(), "events.ReservationFailed")
}

func TestCoordinator_VerificationFailed(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{}
	backend := &gateway.ReservationsMock{
		VerifyErr: errors.New("verification mismatch"),
	}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	outcome, err := coordinator.Reserve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeVerificationFailed, outcome.Kind)
	assert.Equal(t, reservation.StateFailed, coordinator.State())
	assert.Equal(t, 0, backend.BookCount(), "booking must not run without verification")
	assert.Contains(t, publisher.Topics(), "events.ReservationFailed")
}

func TestCoordinator_ConflictAfterPayment(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{}
	backend := &gateway.ReservationsMock{
		BookErr: fmt.Errorf("seat already reserved: %w", entity.ErrConflict),
	}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	outcome, err := coordinator.Reserve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.OutcomeConflict, outcome.Kind)
	assert.Equal(t, reservation.StateConflict, coordinator.State())
	assert.Equal(t, 1, backend.BookCount(), "no booking retry after conflict")

	assert.Contains(t, publisher.Topics(), "events.ReservationConflicted")
	assert.NotContains(t, publisher.Topics(), "events.ReservationConfirmed")
}

func TestCoordinator_SessionInvalid(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{}
	backend := &gateway.ReservationsMock{}
	publisher := &capturingPublisher{}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: false}, provider, backend,
		newTestEventBus(t, publisher), testConfig(),
	)

	_, err := coordinator.Reserve(context.Background())
	require.ErrorIs(t, err, entity.ErrSessionInvalid)

	assert.Equal(t, 0, provider.RequestCount())
}

func TestCoordinator_NoSeatSelected(t *testing.T) {
	seats := &gateway.SeatsMock{Seats: []entity.Seat{{ID: "s-1", Code: "A1"}}}
	store := seatstore.New(seats, "ev-1")
	_, err := store.Refresh(context.Background())
	require.NoError(t, err)

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true},
		&gateway.PaymentProviderMock{}, &gateway.ReservationsMock{},
		newTestEventBus(t, &capturingPublisher{}), testConfig(),
	)

	_, err = coordinator.Reserve(context.Background())
	require.ErrorIs(t, err, entity.ErrNoSeatSelected)
}

func TestCoordinator_RejectsReentrantAttempt(t *testing.T) {
	store := newSelectedStore(t)
	provider := &gateway.PaymentProviderMock{
		Release: make(chan struct{}),
	}
	backend := &gateway.ReservationsMock{
		BookResult: entity.BookingResult{ReservationID: "r-1"},
	}

	coordinator := reservation.NewCoordinator(
		store, guardStub{valid: true}, provider, backend,
		newTestEventBus(t, &capturingPublisher{}), testConfig(),
	)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = coordinator.Reserve(context.Background())
	}()

	require.Eventually(t, func() bool {
		return provider.RequestCount() > 0
	}, 5*time.Second, 10*time.Millisecond)

	_, err := coordinator.Reserve(context.Background())
	require.ErrorIs(t, err, entity.ErrAttemptInFlight)

	close(provider.Release)
	<-firstDone

	outcome, err := coordinator.Reserve(context.Background())
	require.ErrorIs(t, err, entity.ErrNoSeatSelected, "first attempt confirmed and cleared the selection")
	assert.Empty(t, outcome.Kind)
}
