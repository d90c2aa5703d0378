package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/api/middleware"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// menuCatalog is the slice of the backend the public menu needs.
type menuCatalog interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (domain.MenuItem, error)
}

// MenuHandler renders the public menu. The page is readable anonymously;
// ordering requires a customer session.
type MenuHandler struct {
	menu  menuCatalog
	carts ports.CartStore
}

func NewMenuHandler(menu menuCatalog, carts ports.CartStore) *MenuHandler {
	return &MenuHandler{menu: menu, carts: carts}
}

type menuCategory struct {
	Name  string
	Items []domain.MenuItem
}

type menuPage struct {
	Categories []menuCategory
	AllNames   []string
	Query      string
	Category   string
}

// Menu groups items by category in first-appearance order. `q` narrows by
// item name, `category` by exact category; both apply after grouping so the
// category selector always lists every category.
func (h *MenuHandler) Menu(c echo.Context) error {
	items, err := h.menu.List(c.Request().Context())
	if err != nil {
		return err
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	category := c.QueryParam("category")

	var names []string
	var cats []menuCategory
	index := map[string]int{}
	for _, it := range items {
		if _, ok := index[it.Category]; !ok {
			index[it.Category] = len(cats)
			cats = append(cats, menuCategory{Name: it.Category})
			names = append(names, it.Category)
		}
		if category != "" && it.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(query)) {
			continue
		}
		i := index[it.Category]
		cats[i].Items = append(cats[i].Items, it)
	}

	kept := cats[:0]
	for _, cat := range cats {
		if len(cat.Items) > 0 {
			kept = append(kept, cat)
		}
	}

	p := newPage(c, "Menu", menuPage{
		Categories: kept,
		AllNames:   names,
		Query:      query,
		Category:   category,
	})
	if sess := middleware.SessionFrom(c); sess.IsCustomer() {
		if cart, err := h.carts.Get(c.Request().Context(), sess.ID); err == nil {
			p.CartCount = cart.Count()
		}
	}
	return c.Render(http.StatusOK, "menu", p)
}
