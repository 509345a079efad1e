// Package session gates every reservation action on a live
// authenticated session.
package session

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"boxoffice/entity"
	"boxoffice/pkg/log"
)

// SurfaceKind controls what an invalid session does to the hosting
// surface. A popup has no parent navigation, so it is asked to close; a
// page deep-link only gets the message and stays put.
type SurfaceKind string

const (
	SurfacePopup SurfaceKind = "popup"
	SurfacePage  SurfaceKind = "page"
)

type IdentityGateway interface {
	Me(ctx context.Context) (entity.Identity, error)
}

// Guard holds the process-scoped session state. Check runs once at
// startup; Invalidate is the kill-switch every authorization failure
// funnels into. However many concurrent calls trip it, the logout side
// effects run exactly once and no server call is made.
type Guard struct {
	identity IdentityGateway
	eventBus *cqrs.EventBus
	kind     SurfaceKind

	mu    sync.RWMutex
	valid bool
	who   entity.Identity

	invalidateOnce sync.Once
}

func NewGuard(identity IdentityGateway, eventBus *cqrs.EventBus, kind SurfaceKind) *Guard {
	if identity == nil {
		panic("missing identity gateway")
	}
	if eventBus == nil {
		panic("missing eventBus")
	}

	return &Guard{
		identity: identity,
		eventBus: eventBus,
		kind:     kind,
	}
}

// Check issues the single "who am I" call. A failure is definitive: it
// is not retried and flips the guard to invalid.
func (g *Guard) Check(ctx context.Context) error {
	identity, err := g.identity.Me(ctx)
	if err != nil {
		log.FromContext(ctx).WithError(err).Warn("Session check failed")
		g.Invalidate(ctx, "Your login session has expired. Please log in again.")
		return entity.ErrSessionInvalid
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.valid = true
	g.who = identity

	log.FromContext(ctx).WithField("user_id", identity.UserID).Info("Session check passed")
	return nil
}

// Invalidate performs the local-only logout transition: no server call,
// reservation actions become no-ops, and one SessionExpired event is
// published. Safe to call from any goroutine; only the first call has
// side effects.
func (g *Guard) Invalidate(ctx context.Context, reason string) {
	g.invalidateOnce.Do(func() {
		g.mu.Lock()
		g.valid = false
		g.who = entity.Identity{}
		g.mu.Unlock()

		log.FromContext(ctx).WithField("reason", reason).Info("Session invalidated")

		err := g.eventBus.Publish(ctx, entity.SessionExpired{
			Header:       entity.NewEventHeader(),
			Reason:       reason,
			CloseSurface: g.kind == SurfacePopup,
		})
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("Could not publish session expiry")
		}
	})
}

// AuthFailureHook adapts Invalidate to the gateway transport's
// interception point.
func (g *Guard) AuthFailureHook() func() {
	return func() {
		g.Invalidate(context.Background(), "Your login session has expired. Please log in again.")
	}
}

func (g *Guard) Valid() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.valid
}

func (g *Guard) Identity() (entity.Identity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.who, g.valid
}
