package ports

import (
	"context"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// SessionStore is the single authoritative owner of persisted session state.
// Get returns domain.ErrNotFound for an unknown or expired id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context, id string) error
}

// CartStore keys carts by session id; a cart never outlives its session.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Add(ctx context.Context, sessionID string, line domain.CartLine) error
	SetQuantity(ctx context.Context, sessionID string, menuItemID, quantity int) error
	Remove(ctx context.Context, sessionID string, menuItemID int) error
	Clear(ctx context.Context, sessionID string) error
}

// WizardStore persists the reservation wizard's draft between requests,
// scoped to the session like the cart.
type WizardStore interface {
	Get(ctx context.Context, sessionID string) (*domain.ReservationDraft, error)
	Set(ctx context.Context, sessionID string, d *domain.ReservationDraft) error
	Clear(ctx context.Context, sessionID string) error
}
