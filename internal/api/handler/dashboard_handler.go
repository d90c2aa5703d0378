package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/ports"
)

// DashboardHandler renders the staff landing page.
type DashboardHandler struct {
	dashboard ports.DashboardService
	registry  *Registry
}

func NewDashboardHandler(dashboard ports.DashboardService, registry *Registry) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, registry: registry}
}

type dashboardLink struct {
	Name  string
	Title string
}

type dashboardPage struct {
	Snapshot  ports.DashboardSnapshot
	Resources []dashboardLink
}

// Dashboard aggregates the headline counts; the whole page fails rather than
// showing partial numbers.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	snapshot, err := h.dashboard.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	links := make([]dashboardLink, 0, len(h.registry.All()))
	for _, res := range h.registry.All() {
		links = append(links, dashboardLink{Name: res.Name, Title: res.Title})
	}

	return c.Render(http.StatusOK, "dashboard", newPage(c, "Dashboard", dashboardPage{
		Snapshot:  snapshot,
		Resources: links,
	}))
}
