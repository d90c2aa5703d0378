package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub stores tracking teardown calls
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	sessions map[string]*domain.Session
	cleared  []string
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
	s.cleared = append(s.cleared, id)
	return nil
}

type stubCartStore struct {
	carts   map[string]domain.Cart
	cleared []string
}

func (s *stubCartStore) Get(_ context.Context, sessionID string) (domain.Cart, error) {
	return s.carts[sessionID], nil
}

func (s *stubCartStore) Add(_ context.Context, sessionID string, line domain.CartLine) error {
	cart := s.carts[sessionID]
	cart.Lines = append(cart.Lines, line)
	s.carts[sessionID] = cart
	return nil
}

func (s *stubCartStore) SetQuantity(_ context.Context, _ string, _, _ int) error { return nil }
func (s *stubCartStore) Remove(_ context.Context, _ string, _ int) error         { return nil }

func (s *stubCartStore) Clear(_ context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	s.cleared = append(s.cleared, sessionID)
	return nil
}

type stubWizardStore struct {
	drafts  map[string]*domain.ReservationDraft
	cleared []string
}

func (s *stubWizardStore) Get(_ context.Context, sessionID string) (*domain.ReservationDraft, error) {
	if d, ok := s.drafts[sessionID]; ok {
		return d, nil
	}
	return domain.NewReservationDraft(), nil
}

func (s *stubWizardStore) Set(_ context.Context, sessionID string, d *domain.ReservationDraft) error {
	s.drafts[sessionID] = d
	return nil
}

func (s *stubWizardStore) Clear(_ context.Context, sessionID string) error {
	delete(s.drafts, sessionID)
	s.cleared = append(s.cleared, sessionID)
	return nil
}

const cookieName = "console_session"

type teardownFixture struct {
	handler  echo.HTTPErrorHandler
	sessions *stubSessionStore
	carts    *stubCartStore
	wizards  *stubWizardStore
}

func newTeardownFixture() *teardownFixture {
	sessions := &stubSessionStore{sessions: map[string]*domain.Session{
		"sid-1": {ID: "sid-1", UserType: domain.UserCustomer},
	}}
	carts := &stubCartStore{carts: map[string]domain.Cart{
		"sid-1": {Lines: []domain.CartLine{{MenuItemID: 1, Name: "Carbonara", Price: 14.5, Quantity: 2}}},
	}}
	wizards := &stubWizardStore{drafts: map[string]*domain.ReservationDraft{
		"sid-1": {Step: domain.StepTable, Date: "2026-09-01", Time: "19:00"},
	}}
	return &teardownFixture{
		handler:  NewHTTPErrorHandler(zerolog.Nop(), sessions, carts, wizards, cookieName),
		sessions: sessions,
		carts:    carts,
		wizards:  wizards,
	}
}

func request(cookie string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestErrorHandler_SessionExpiredTearsDownEverything(t *testing.T) {
	f := newTeardownFixture()
	c, rec := request("sid-1")

	f.handler(fmt.Errorf("list menu-items: %w", domain.ErrSessionExpired), c)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	ctx := context.Background()
	if _, err := f.sessions.Get(ctx, "sid-1"); err != domain.ErrNotFound {
		t.Errorf("expected session gone after teardown, got err %v", err)
	}
	if cart, _ := f.carts.Get(ctx, "sid-1"); !cart.IsEmpty() {
		t.Errorf("expected cart cleared with the session, got %d lines", len(cart.Lines))
	}
	if draft, _ := f.wizards.Get(ctx, "sid-1"); draft.Step != domain.StepDateTime {
		t.Errorf("expected a fresh reservation draft after teardown, got step %d", draft.Step)
	}
	if len(f.carts.cleared) != 1 || f.carts.cleared[0] != "sid-1" {
		t.Errorf("expected exactly one cart clear for sid-1, got %v", f.carts.cleared)
	}
	if len(f.wizards.cleared) != 1 || f.wizards.cleared[0] != "sid-1" {
		t.Errorf("expected exactly one wizard clear for sid-1, got %v", f.wizards.cleared)
	}

	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be expired in the response")
	}
}

func TestErrorHandler_SessionExpiredWithoutCookie(t *testing.T) {
	f := newTeardownFixture()
	c, rec := request("")

	f.handler(domain.ErrSessionExpired, c)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(f.sessions.cleared) != 0 || len(f.carts.cleared) != 0 {
		t.Errorf("nothing to tear down without a cookie, cleared %v %v", f.sessions.cleared, f.carts.cleared)
	}
}

func TestErrorHandler_NotAuthenticatedRedirectsOnly(t *testing.T) {
	f := newTeardownFixture()
	c, rec := request("sid-1")

	f.handler(domain.ErrNotAuthenticated, c)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(f.sessions.cleared) != 0 {
		t.Errorf("a missing login must not destroy the live session, cleared %v", f.sessions.cleared)
	}
}

func TestErrorHandler_DomainErrorsAsJSON(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrEmptyCart, http.StatusUnprocessableEntity},
		{&domain.RequestError{StatusCode: http.StatusConflict, Message: "duplicate"}, http.StatusConflict},
	}
	for _, tc := range cases {
		f := newTeardownFixture()
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		f.handler(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}
