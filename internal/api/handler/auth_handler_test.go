package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/api/middleware"
	"github.com/tableside/restaurant-console/internal/api/view"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub auth service
// ---------------------------------------------------------------------------

type stubAuthService struct {
	loginCustomerFn func(ctx context.Context, username, password string) (*domain.Session, error)
	loginStaffFn    func(ctx context.Context, email, password string) (*domain.Session, error)
	registerFn      func(ctx context.Context, in ports.RegisterInput) error
	loggedOut       []string
}

func (s *stubAuthService) LoginCustomer(ctx context.Context, username, password string) (*domain.Session, error) {
	return s.loginCustomerFn(ctx, username, password)
}

func (s *stubAuthService) LoginStaff(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginStaffFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	return nil
}

const testCookie = "console_session"

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	return e
}

func postForm(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho(t)
	expires := time.Now().Add(time.Hour)
	stub := &stubAuthService{
		loginCustomerFn: func(_ context.Context, username, password string) (*domain.Session, error) {
			if username != "ana" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &domain.Session{ID: "sid-1", UserType: domain.UserCustomer, ExpiresAt: expires}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	c, rec := postForm(e, "/login", url.Values{"username": {"ana"}, "password": {"secret"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/menu" {
		t.Fatalf("expected 303 to /menu, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value != "sid-1" {
		t.Fatalf("expected session cookie sid-1, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be http-only")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newEcho(t)
	stub := &stubAuthService{
		loginCustomerFn: func(_ context.Context, _, _ string) (*domain.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, testCookie)

	c, rec := postForm(e, "/login", url.Values{"username": {"ana"}, "password": {"wrong"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 re-render, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ana") {
		t.Error("expected the submitted username to be preserved in the form")
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie && ck.Value != "" {
			t.Error("no session cookie may be set on failed login")
		}
	}
}

func TestAuthHandler_LoginPage_RedirectsAuthenticated(t *testing.T) {
	e := newEcho(t)
	h := NewAuthHandler(&stubAuthService{}, testCookie)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionKey, &domain.Session{ID: "sid-1", UserType: domain.UserCustomer})

	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/menu" {
		t.Fatalf("expected 303 to /menu, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Signup_PasswordMismatch(t *testing.T) {
	e := newEcho(t)
	called := false
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) error {
			called = true
			return nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	c, rec := postForm(e, "/signup", url.Values{
		"username":  {"ana"},
		"password":  {"one"},
		"password2": {"two"},
	})
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if called {
		t.Error("mismatched passwords must not reach the backend")
	}
	if !strings.Contains(rec.Body.String(), "Passwords do not match") {
		t.Error("expected mismatch message in the re-rendered form")
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho(t)
	var got ports.RegisterInput
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) error {
			got = in
			return nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	c, rec := postForm(e, "/signup", url.Values{
		"username":  {"ana"},
		"email":     {"ana@example.com"},
		"password":  {"secret"},
		"password2": {"secret"},
		"firstName": {"Ana"},
		"lastName":  {"Lopez"},
		"contact":   {"5551234"},
	})
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login?registered=1" {
		t.Fatalf("expected 303 to /login?registered=1, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if got.Username != "ana" || got.Email != "ana@example.com" || got.FirstName != "Ana" {
		t.Errorf("register input not forwarded: %+v", got)
	}
}

func TestAuthHandler_StaffLogin_Success(t *testing.T) {
	e := newEcho(t)
	stub := &stubAuthService{
		loginStaffFn: func(_ context.Context, email, password string) (*domain.Session, error) {
			if email != "rosa@example.com" {
				t.Fatalf("unexpected email %s", email)
			}
			return &domain.Session{ID: "sid-2", UserType: domain.UserStaff, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := NewAuthHandler(stub, testCookie)

	c, rec := postForm(e, "/staff/login", url.Values{"email": {"rosa@example.com"}, "password": {"secret"}})
	if err := h.StaffLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/console" {
		t.Fatalf("expected 303 to /console, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho(t)
	stub := &stubAuthService{}
	h := NewAuthHandler(stub, testCookie)

	c, rec := postForm(e, "/logout", url.Values{})
	c.Set(middleware.SessionKey, &domain.Session{ID: "sid-2", UserType: domain.UserStaff})

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/staff/login" {
		t.Fatalf("expected 303 to /staff/login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "sid-2" {
		t.Errorf("expected session sid-2 torn down, got %v", stub.loggedOut)
	}
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be expired")
	}
}
