package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/api/middleware"
	"github.com/tableside/restaurant-console/internal/core/domain"
)

// page is the envelope every template receives: the layout reads the session
// and flash messages, the content template reads Data.
type page struct {
	Title     string
	Session   *domain.Session
	CartCount int
	Error     string
	Success   string
	Data      any
}

func newPage(c echo.Context, title string, data any) page {
	return page{
		Title:   title,
		Session: middleware.SessionFrom(c),
		Data:    data,
	}
}

// customerID returns the session's customer id; route guards guarantee a
// customer session is present on the routes that call this.
func customerID(c echo.Context) int {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return 0
	}
	return sess.Profile.CustomerID
}

func sessionID(c echo.Context) string {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return ""
	}
	return sess.ID
}
