package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// CartHandler owns the cart page and its mutations. Prices are captured from
// the menu at add time; the cart never refetches them.
type CartHandler struct {
	carts    ports.CartStore
	menu     menuCatalog
	checkout ports.CheckoutService
}

func NewCartHandler(carts ports.CartStore, menu menuCatalog, checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, menu: menu, checkout: checkout}
}

type cartPage struct {
	Cart       domain.Cart
	Totals     ports.Totals
	TaxPercent float64
}

// Cart renders the cart with the same totals math checkout will commit.
func (h *CartHandler) Cart(c echo.Context) error {
	cart, err := h.carts.Get(c.Request().Context(), sessionID(c))
	if err != nil {
		return err
	}

	totals := h.checkout.Totals(cart, nil)
	p := newPage(c, "Your cart", cartPage{
		Cart:       cart,
		Totals:     totals,
		TaxPercent: totals.TaxRate * 100,
	})
	p.CartCount = cart.Count()
	return c.Render(http.StatusOK, "cart", p)
}

// Add puts a menu item in the cart, capturing its current name and price.
func (h *CartHandler) Add(c echo.Context) error {
	itemID, err := strconv.Atoi(c.FormValue("menu_item_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item")
	}
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || qty < 1 {
		qty = 1
	}

	item, err := h.menu.Get(c.Request().Context(), itemID)
	if err != nil {
		return err
	}
	if !item.Availability {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "that item is currently unavailable")
	}

	err = h.carts.Add(c.Request().Context(), sessionID(c), domain.CartLine{
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   qty,
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// Update pins a line's quantity; zero removes it.
func (h *CartHandler) Update(c echo.Context) error {
	itemID, err := strconv.Atoi(c.FormValue("menu_item_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item")
	}
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if err := h.carts.SetQuantity(c.Request().Context(), sessionID(c), itemID, qty); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// Remove drops a line.
func (h *CartHandler) Remove(c echo.Context) error {
	itemID, err := strconv.Atoi(c.FormValue("menu_item_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid menu item")
	}
	if err := h.carts.Remove(c.Request().Context(), sessionID(c), itemID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.carts.Clear(c.Request().Context(), sessionID(c)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}
