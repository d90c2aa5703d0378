package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// wizardTTL bounds how long an abandoned reservation draft lingers. A draft
// is scratch state; losing it only means restarting the wizard.
const wizardTTL = 2 * time.Hour

// WizardStore keeps the in-progress reservation draft under
// reservation:<sessionID>.
type WizardStore struct {
	client *redis.Client
}

func NewWizardStore(client *redis.Client) *WizardStore {
	return &WizardStore{client: client}
}

func (s *WizardStore) key(sessionID string) string {
	return "reservation:" + sessionID
}

// Get returns the session's draft, or a fresh one when none is stored.
func (s *WizardStore) Get(ctx context.Context, sessionID string) (*domain.ReservationDraft, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewReservationDraft(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reservation draft get: %w", err)
	}

	var draft domain.ReservationDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("reservation draft decode: %w", err)
	}
	return &draft, nil
}

func (s *WizardStore) Set(ctx context.Context, sessionID string, draft *domain.ReservationDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("reservation draft encode: %w", err)
	}
	return s.client.Set(ctx, s.key(sessionID), raw, wizardTTL).Err()
}

func (s *WizardStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
