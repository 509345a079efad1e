package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/entity"
	"boxoffice/gateway"
	"boxoffice/session"
)

type capturingPublisher struct {
	mu       sync.Mutex
	messages []*message.Message
}

func (p *capturingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, messages...)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
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

func TestGuard_CheckPassed(t *testing.T) {
	identity := &gateway.IdentityMock{
		Identity: entity.Identity{UserID: "u-1", Nickname: "jade", Role: "USER"},
	}
	publisher := &capturingPublisher{}
	guard := session.NewGuard(identity, newTestEventBus(t, publisher), session.SurfacePopup)

	require.NoError(t, guard.Check(context.Background()))

	assert.True(t, guard.Valid())
	who, ok := guard.Identity()
	require.True(t, ok)
	assert.Equal(t, "u-1", who.UserID)
	assert.Equal(t, 1, identity.MeCalls)
	assert.Equal(t, 0, publisher.Count())
}

func TestGuard_CheckFailed(t *testing.T) {
	identity := &gateway.IdentityMock{Err: errors.New("401")}
	publisher := &capturingPublisher{}
	guard := session.NewGuard(identity, newTestEventBus(t, publisher), session.SurfacePopup)

	err := guard.Check(context.Background())
	require.ErrorIs(t, err, entity.ErrSessionInvalid)

	assert.False(t, guard.Valid())
	assert.Equal(t, 1, publisher.Count())
}

func TestGuard_InvalidateIsIdempotent(t *testing.T) {
	identity := &gateway.IdentityMock{
		Identity: entity.Identity{UserID: "u-1"},
	}
	publisher := &capturingPublisher{}
	guard := session.NewGuard(identity, newTestEventBus(t, publisher), session.SurfacePage)

	require.NoError(t, guard.Check(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard.Invalidate(context.Background(), "expired")
		}()
	}
	wg.Wait()

	assert.False(t, guard.Valid())
	assert.Equal(t, 1, publisher.Count(), "expiry should be published exactly once")
}

func TestGuard_PageSurfaceStaysOpen(t *testing.T) {
	identity := &gateway.IdentityMock{Err: errors.New("401")}
	publisher := &capturingPublisher{}
	guard := session.NewGuard(identity, newTestEventBus(t, publisher), session.SurfacePage)

	_ = guard.Check(context.Background())

	require.Equal(t, 1, publisher.Count())

	var event entity.SessionExpired
	require.NoError(t, json.Unmarshal(publisher.messages[0].Payload, &event))
	assert.False(t, event.CloseSurface)
	assert.NotEmpty(t, event.Reason)
}
