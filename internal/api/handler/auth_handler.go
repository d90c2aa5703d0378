package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/api/middleware"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// AuthHandler renders the login and signup pages and owns the session cookie.
type AuthHandler struct {
	auth       ports.AuthService
	cookieName string
}

func NewAuthHandler(auth ports.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName}
}

type loginPage struct {
	Username string
}

type staffLoginPage struct {
	Email string
}

type signupPage struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Contact   string
}

// LoginPage shows the customer login form. An already-authenticated browser
// is sent to where it belongs instead.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if sess := middleware.SessionFrom(c); sess != nil {
		return c.Redirect(http.StatusSeeOther, homeFor(sess))
	}
	p := newPage(c, "Log in", loginPage{})
	if c.QueryParam("registered") == "1" {
		p.Success = "Account created. Log in to continue."
	}
	return c.Render(http.StatusOK, "login", p)
}

// Login authenticates a customer and opens the session.
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	sess, err := h.auth.LoginCustomer(c.Request().Context(), username, password)
	if err != nil {
		p := newPage(c, "Log in", loginPage{Username: username})
		p.Error = domain.ErrorMessage(err, "Invalid username or password")
		return c.Render(http.StatusUnauthorized, "login", p)
	}

	middleware.SetSessionCookie(c, h.cookieName, sess.ID, sess.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, "/menu")
}

// SignupPage shows the customer registration form.
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup", newPage(c, "Sign up", signupPage{}))
}

// Signup registers a new customer; the account logs in separately afterwards.
func (h *AuthHandler) Signup(c echo.Context) error {
	in := ports.RegisterInput{
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
		Password2: c.FormValue("password2"),
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Contact:   c.FormValue("contact"),
	}

	rerender := func(msg string) error {
		p := newPage(c, "Sign up", signupPage{
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Contact:   in.Contact,
		})
		p.Error = msg
		return c.Render(http.StatusUnprocessableEntity, "signup", p)
	}

	if in.Password != in.Password2 {
		return rerender("Passwords do not match")
	}
	if err := h.auth.Register(c.Request().Context(), in); err != nil {
		return rerender(domain.ErrorMessage(err, "Could not create the account"))
	}
	return c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// StaffLoginPage shows the staff login form.
func (h *AuthHandler) StaffLoginPage(c echo.Context) error {
	if sess := middleware.SessionFrom(c); sess != nil {
		return c.Redirect(http.StatusSeeOther, homeFor(sess))
	}
	return c.Render(http.StatusOK, "staff_login", newPage(c, "Staff login", staffLoginPage{}))
}

// StaffLogin authenticates staff and opens the session.
func (h *AuthHandler) StaffLogin(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	sess, err := h.auth.LoginStaff(c.Request().Context(), email, password)
	if err != nil {
		p := newPage(c, "Staff login", staffLoginPage{Email: email})
		p.Error = domain.ErrorMessage(err, "Invalid email or password")
		return c.Render(http.StatusUnauthorized, "staff_login", p)
	}

	middleware.SetSessionCookie(c, h.cookieName, sess.ID, sess.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, "/console")
}

// Logout tears down the session and everything scoped to it.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	target := "/login"
	if sess != nil {
		if sess.IsStaff() {
			target = "/staff/login"
		}
		if err := h.auth.Logout(c.Request().Context(), sess.ID); err != nil {
			return err
		}
	}
	middleware.ClearSessionCookie(c, h.cookieName)
	return c.Redirect(http.StatusSeeOther, target)
}

func homeFor(sess *domain.Session) string {
	if sess.IsStaff() {
		return "/console"
	}
	return "/menu"
}
