package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/api/metrics"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// AuthService implements the dual-role login flow: customers authenticate
// with username/password against the token endpoint, staff with
// email/password against the staff login endpoint. Both end in one place — a
// server-side session owning the token pair, user type, and cached profile.
type AuthService struct {
	backend  ports.AuthBackend
	sessions ports.SessionStore
	carts    ports.CartStore
	wizards  ports.WizardStore

	defaultTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

func NewAuthService(b ports.AuthBackend, sessions ports.SessionStore, carts ports.CartStore, wizards ports.WizardStore, defaultTTL time.Duration, log zerolog.Logger) *AuthService {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &AuthService{
		backend:    b,
		sessions:   sessions,
		carts:      carts,
		wizards:    wizards,
		defaultTTL: defaultTTL,
		now:        time.Now,
		log:        log,
	}
}

// LoginCustomer exchanges credentials for a token pair, fetches the profile,
// and opens a session. A failed profile fetch does not fail the login; the
// session falls back to the bare username, matching the backend's own
// tolerance for customers without a profile row.
func (s *AuthService) LoginCustomer(ctx context.Context, username, password string) (*domain.Session, error) {
	pair, err := s.backend.CustomerLogin(ctx, username, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.backend.Me(ctx, pair.Access)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("profile fetch failed after login")
		profile = domain.Profile{Username: username}
	}

	sess := s.newSession(pair.Access, pair.Refresh, domain.UserCustomer, profile)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, err
	}
	metrics.SessionsOpenedTotal.WithLabelValues(string(domain.UserCustomer)).Inc()
	s.log.Info().Str("username", username).Msg("customer session opened")
	return sess, nil
}

// LoginStaff authenticates against the staff endpoint, which returns the
// token pair and profile in one response.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.Session, error) {
	result, err := s.backend.StaffLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := s.newSession(result.Access, result.Refresh, domain.UserStaff, result.Profile)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, err
	}
	metrics.SessionsOpenedTotal.WithLabelValues(string(domain.UserStaff)).Inc()
	s.log.Info().Str("email", email).Msg("staff session opened")
	return sess, nil
}

// Register creates a new customer account; the caller logs in separately.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.backend.Register(ctx, in)
}

// Logout tears down the session and everything scoped to it — cart and any
// in-progress reservation draft go with it.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Msg("cart clear failed on logout")
	}
	if err := s.wizards.Clear(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Msg("wizard clear failed on logout")
	}
	metrics.SessionsClosedTotal.WithLabelValues("logout").Inc()
	return nil
}

func (s *AuthService) newSession(access, refresh string, ut domain.UserType, profile domain.Profile) *domain.Session {
	expires := s.now().Add(s.defaultTTL)
	if exp, ok := tokenExpiry(access); ok {
		expires = exp
	}
	return &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  access,
		RefreshToken: refresh,
		UserType:     ut,
		Profile:      profile,
		ExpiresAt:    expires,
	}
}

// tokenExpiry reads the exp claim without verifying the signature — the
// signing key lives backend-side and the backend re-verifies every request;
// here the claim only bounds the session's lifetime.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
