package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// CheckoutHandler renders the checkout page and submits the order.
type CheckoutHandler struct {
	carts    ports.CartStore
	checkout ports.CheckoutService
	now      func() time.Time
}

func NewCheckoutHandler(carts ports.CartStore, checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkout: checkout, now: time.Now}
}

type checkoutPage struct {
	Cart       domain.Cart
	Code       string
	Discount   *domain.Discount
	Totals     ports.Totals
	TaxPercent float64
}

// Page renders the checkout summary. A discount code arrives as a query
// parameter so applying one is a plain page reload.
func (h *CheckoutHandler) Page(c echo.Context) error {
	cart, err := h.carts.Get(c.Request().Context(), sessionID(c))
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return c.Redirect(http.StatusSeeOther, "/cart")
	}

	code := c.QueryParam("code")
	data, errMsg := h.buildPage(c, cart, code)
	p := newPage(c, "Checkout", data)
	p.CartCount = cart.Count()
	p.Error = errMsg
	return c.Render(http.StatusOK, "checkout", p)
}

// Place runs the composite purchase. The discount code is re-resolved at
// submit time; a code that expired between render and submit fails the
// attempt rather than silently dropping the discount.
func (h *CheckoutHandler) Place(c echo.Context) error {
	ctx := c.Request().Context()
	sid := sessionID(c)

	cart, err := h.carts.Get(ctx, sid)
	if err != nil {
		return err
	}

	code := c.FormValue("code")
	var discount *domain.Discount
	if code != "" {
		d, err := h.checkout.FindDiscount(ctx, code, h.today())
		if err != nil {
			return h.rerender(c, cart, code, domain.ErrorMessage(err, "Discount code not found"))
		}
		discount = &d
	}

	result, err := h.checkout.PlaceOrder(ctx, ports.PlaceOrderInput{
		SessionID:     sid,
		CustomerID:    customerID(c),
		Cart:          cart,
		Discount:      discount,
		PaymentMethod: c.FormValue("payment_method"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
		return h.rerender(c, cart, code, domain.ErrorMessage(err, "Checkout failed. Please try again."))
	}

	return c.Redirect(http.StatusSeeOther,
		fmt.Sprintf("/orders/confirmation?order=%d&bill=%d", result.OrderID, result.BillID))
}

func (h *CheckoutHandler) rerender(c echo.Context, cart domain.Cart, code, errMsg string) error {
	data, lookupErr := h.buildPage(c, cart, code)
	p := newPage(c, "Checkout", data)
	p.CartCount = cart.Count()
	p.Error = errMsg
	if errMsg == "" {
		p.Error = lookupErr
	}
	return c.Render(http.StatusUnprocessableEntity, "checkout", p)
}

// buildPage resolves the discount code and computes totals; a bad code comes
// back as a message, not an error, so the page still renders.
func (h *CheckoutHandler) buildPage(c echo.Context, cart domain.Cart, code string) (checkoutPage, string) {
	var (
		discount *domain.Discount
		errMsg   string
	)
	if code != "" {
		d, err := h.checkout.FindDiscount(c.Request().Context(), code, h.today())
		switch {
		case err == nil:
			discount = &d
		case errors.Is(err, domain.ErrDiscountNotFound):
			errMsg = "Discount code not found or not active today"
		default:
			errMsg = domain.ErrorMessage(err, "Could not look up the discount code")
		}
	}

	totals := h.checkout.Totals(cart, discount)
	return checkoutPage{
		Cart:       cart,
		Code:       code,
		Discount:   discount,
		Totals:     totals,
		TaxPercent: totals.TaxRate * 100,
	}, errMsg
}

func (h *CheckoutHandler) today() string {
	return h.now().Format("2006-01-02")
}
