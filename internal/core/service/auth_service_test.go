package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubAuthBackend struct {
	loginErr      error
	meErr         error
	staffErr      error
	registerCalls []ports.RegisterInput
	profile       domain.Profile
	accessToken   string
}

func (b *stubAuthBackend) CustomerLogin(_ context.Context, username, password string) (ports.TokenPair, error) {
	if b.loginErr != nil {
		return ports.TokenPair{}, b.loginErr
	}
	return ports.TokenPair{Access: b.accessToken, Refresh: "refresh-token"}, nil
}

func (b *stubAuthBackend) StaffLogin(_ context.Context, email, password string) (ports.StaffLoginResult, error) {
	if b.staffErr != nil {
		return ports.StaffLoginResult{}, b.staffErr
	}
	return ports.StaffLoginResult{
		Access:  b.accessToken,
		Refresh: "refresh-token",
		Profile: domain.Profile{StaffID: 9, Name: "Rosa", Email: email, Role: "Manager"},
	}, nil
}

func (b *stubAuthBackend) Me(_ context.Context, _ string) (domain.Profile, error) {
	if b.meErr != nil {
		return domain.Profile{}, b.meErr
	}
	return b.profile, nil
}

func (b *stubAuthBackend) Register(_ context.Context, in ports.RegisterInput) error {
	b.registerCalls = append(b.registerCalls, in)
	return nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]*domain.Session{}}
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Set(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Clear(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestAuth(b *stubAuthBackend) (*AuthService, *stubSessionStore, *stubCartStore, *stubWizardStore) {
	sessions := newStubSessionStore()
	carts := newStubCartStore()
	wizards := newStubWizardStore()
	return NewAuthService(b, sessions, carts, wizards, 24*time.Hour, zerolog.Nop()), sessions, carts, wizards
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestLoginCustomer_OpensSessionWithProfile(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	b := &stubAuthBackend{
		accessToken: signedToken(t, exp),
		profile:     domain.Profile{CustomerID: 42, Username: "ana", FirstName: "Ana", LastName: "Reyes"},
	}
	s, sessions, _, _ := newTestAuth(b)

	sess, err := s.LoginCustomer(context.Background(), "ana", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if sess.UserType != domain.UserCustomer {
		t.Fatalf("user type: %v", sess.UserType)
	}
	if sess.Profile.CustomerID != 42 {
		t.Fatalf("profile: %+v", sess.Profile)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("expiry not taken from token: %v vs %v", sess.ExpiresAt, exp)
	}
	if _, ok := sessions.sessions[sess.ID]; !ok {
		t.Fatalf("session not persisted")
	}
}

func TestLoginCustomer_ProfileFetchFailureFallsBackToUsername(t *testing.T) {
	b := &stubAuthBackend{
		accessToken: signedToken(t, time.Now().Add(time.Hour)),
		meErr:       errors.New("profile endpoint down"),
	}
	s, _, _, _ := newTestAuth(b)

	sess, err := s.LoginCustomer(context.Background(), "ana", "pw")
	if err != nil {
		t.Fatalf("profile failure must not fail the login: %v", err)
	}
	if sess.Profile.Username != "ana" {
		t.Fatalf("fallback profile: %+v", sess.Profile)
	}
}

func TestLoginCustomer_BadCredentials(t *testing.T) {
	b := &stubAuthBackend{loginErr: &domain.RequestError{StatusCode: 401, Message: "No active account found"}}
	s, sessions, _, _ := newTestAuth(b)

	if _, err := s.LoginCustomer(context.Background(), "ana", "wrong"); err == nil {
		t.Fatalf("expected error")
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("session opened despite failed login")
	}
}

func TestLoginCustomer_UnparseableTokenUsesDefaultTTL(t *testing.T) {
	b := &stubAuthBackend{accessToken: "opaque-not-a-jwt"}
	s, _, _, _ := newTestAuth(b)

	before := time.Now()
	sess, err := s.LoginCustomer(context.Background(), "ana", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	want := before.Add(24 * time.Hour)
	if sess.ExpiresAt.Before(want.Add(-time.Minute)) || sess.ExpiresAt.After(want.Add(time.Minute)) {
		t.Fatalf("default ttl not applied: %v", sess.ExpiresAt)
	}
}

func TestLoginStaff_OpensStaffSession(t *testing.T) {
	b := &stubAuthBackend{accessToken: signedToken(t, time.Now().Add(time.Hour))}
	s, _, _, _ := newTestAuth(b)

	sess, err := s.LoginStaff(context.Background(), "rosa@example.com", "pw")
	if err != nil {
		t.Fatalf("staff login: %v", err)
	}
	if !sess.IsStaff() {
		t.Fatalf("user type: %v", sess.UserType)
	}
	if sess.Profile.Role != "Manager" || sess.Profile.Name != "Rosa" {
		t.Fatalf("profile: %+v", sess.Profile)
	}
}

func TestLogout_TearsDownSessionCartAndWizard(t *testing.T) {
	b := &stubAuthBackend{accessToken: signedToken(t, time.Now().Add(time.Hour))}
	s, sessions, carts, wizards := newTestAuth(b)

	sess, err := s.LoginCustomer(context.Background(), "ana", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	_ = carts.Add(context.Background(), sess.ID, domain.CartLine{MenuItemID: 1, Quantity: 1})
	_ = wizards.Set(context.Background(), sess.ID, domain.NewReservationDraft())

	if err := s.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, ok := sessions.sessions[sess.ID]; ok {
		t.Fatalf("session survived logout")
	}
	if cart := carts.carts[sess.ID]; !cart.IsEmpty() {
		t.Fatalf("cart survived logout")
	}
	if _, ok := wizards.drafts[sess.ID]; ok {
		t.Fatalf("wizard draft survived logout")
	}
}

func TestRegister_Delegates(t *testing.T) {
	b := &stubAuthBackend{}
	s, _, _, _ := newTestAuth(b)

	in := ports.RegisterInput{Username: "ana", Email: "ana@example.com", Password: "pw", Password2: "pw"}
	if err := s.Register(context.Background(), in); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(b.registerCalls) != 1 || b.registerCalls[0].Username != "ana" {
		t.Fatalf("register calls: %+v", b.registerCalls)
	}
}
