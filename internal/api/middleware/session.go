package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
	"github.com/tableside/restaurant-console/internal/infrastructure/backend"
)

// SessionKey is the echo context key the loaded session lives under.
const SessionKey = "session"

// Session resolves the session cookie and, when it maps to a live session,
// injects the session into context and the access token into the request
// context for outgoing backend calls. A dead or missing cookie is not an
// error here; route guards decide what anonymous requests may do.
func Session(sessions ports.SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				ClearSessionCookie(c, cookieName)
				return next(c)
			}

			c.Set(SessionKey, sess)
			req := c.Request()
			c.SetRequest(req.WithContext(backend.WithToken(req.Context(), sess.AccessToken)))
			return next(c)
		}
	}
}

// SessionFrom returns the session loaded by the Session middleware, nil when
// the request is anonymous.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionKey).(*domain.Session)
	return sess
}

// RequireCustomer admits only customer sessions; anonymous requests are sent
// to the login page, staff sessions are refused outright.
func RequireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := SessionFrom(c)
		if sess == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if !sess.IsCustomer() {
			return domain.ErrForbidden
		}
		return next(c)
	}
}

// RequireStaff admits only staff sessions; anonymous requests are sent to the
// staff login page.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := SessionFrom(c)
		if sess == nil {
			return c.Redirect(http.StatusSeeOther, "/staff/login")
		}
		if !sess.IsStaff() {
			return domain.ErrForbidden
		}
		return next(c)
	}
}

// SetSessionCookie issues the HTTP-only cookie that carries nothing but the
// session id. Tokens never leave the server.
func SetSessionCookie(c echo.Context, name, sessionID string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    sessionID,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
