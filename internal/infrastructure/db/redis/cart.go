package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tableside/restaurant-console/internal/api/metrics"
	"github.com/tableside/restaurant-console/internal/core/domain"
)

// CartStore keeps each session's cart under cart:<sessionID> as a JSON blob.
// The cart shares the session's lifetime: it is never persisted past logout
// and an expired key simply reads back as an empty cart.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CartStore{client: client, ttl: ttl}
}

func (s *CartStore) key(sessionID string) string {
	return "cart:" + sessionID
}

// Get returns the cart for the session. A missing key yields an empty cart.
func (s *CartStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("cart decode: %w", err)
	}
	return cart, nil
}

// Add appends a line for the item, or bumps the quantity when the item is
// already in the cart.
func (s *CartStore) Add(ctx context.Context, sessionID string, line domain.CartLine) error {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	found := false
	for i := range cart.Lines {
		if cart.Lines[i].MenuItemID == line.MenuItemID {
			cart.Lines[i].Quantity += line.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Lines = append(cart.Lines, line)
	}

	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	return s.save(ctx, sessionID, &cart)
}

// SetQuantity pins an item's quantity. Zero or negative removes the line.
func (s *CartStore) SetQuantity(ctx context.Context, sessionID string, menuItemID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, menuItemID)
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range cart.Lines {
		if cart.Lines[i].MenuItemID == menuItemID {
			cart.Lines[i].Quantity = quantity
			break
		}
	}

	metrics.CartOperationsTotal.WithLabelValues("set_quantity").Inc()
	return s.save(ctx, sessionID, &cart)
}

// Remove drops the item's line entirely.
func (s *CartStore) Remove(ctx context.Context, sessionID string, menuItemID int) error {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.MenuItemID != menuItemID {
			kept = append(kept, l)
		}
	}
	cart.Lines = kept

	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return s.save(ctx, sessionID, &cart)
}

// Clear deletes the cart key outright.
func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *CartStore) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	if cart.IsEmpty() {
		return s.client.Del(ctx, s.key(sessionID)).Err()
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	return s.client.Set(ctx, s.key(sessionID), raw, s.ttl).Err()
}
