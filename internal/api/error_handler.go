package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/api/metrics"
	"github.com/tableside/restaurant-console/internal/api/middleware"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// NewHTTPErrorHandler returns the central error handler:
//   - A 401 from the backend means the stored token is dead. The session and
//     everything scoped to it (cart, reservation draft, cookie) are torn down
//     and the browser goes back to the login page; there is no in-place
//     recovery.
//   - Known domain errors map to deterministic status codes.
//   - Everything else logs the real cause and renders a generic page.
func NewHTTPErrorHandler(log zerolog.Logger, sessions ports.SessionStore, carts ports.CartStore, wizards ports.WizardStore, cookieName string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionExpired) {
			if cookie, cerr := c.Cookie(cookieName); cerr == nil && cookie.Value != "" {
				ctx := c.Request().Context()
				_ = sessions.Clear(ctx, cookie.Value)
				_ = carts.Clear(ctx, cookie.Value)
				_ = wizards.Clear(ctx, cookie.Value)
				metrics.SessionsClosedTotal.WithLabelValues("expired").Inc()
			}
			middleware.ClearSessionCookie(c, cookieName)
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		if errors.Is(err, domain.ErrNotAuthenticated) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)

		if wantsJSON(c) {
			_ = c.JSON(code, map[string]string{"error": msg})
			return
		}
		data := map[string]any{
			"Title":   "Something went wrong",
			"Session": middleware.SessionFrom(c),
			"Status":  code,
			"Message": msg,
		}
		if rerr := c.Render(code, "error", data); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The backend's own rejection travels through untouched.
	var re *domain.RequestError
	if errors.As(err, &re) {
		return re.StatusCode, re.Message
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownResource):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "your cart is empty"
	case errors.Is(err, domain.ErrDiscountNotFound):
		return http.StatusUnprocessableEntity, "discount code not found"
	case errors.Is(err, domain.ErrInvalidStep):
		return http.StatusUnprocessableEntity, "complete the current step first"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMEApplicationJSON)
}
