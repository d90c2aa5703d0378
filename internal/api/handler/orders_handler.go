package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/ports"
)

// OrdersHandler serves the confirmation page, the receipt QR image, and the
// customer's order history.
type OrdersHandler struct {
	history  ports.HistoryService
	checkout ports.CheckoutService
}

func NewOrdersHandler(history ports.HistoryService, checkout ports.CheckoutService) *OrdersHandler {
	return &OrdersHandler{history: history, checkout: checkout}
}

type confirmationPage struct {
	OrderID int
	BillID  int
}

// Confirmation renders the post-checkout page with the receipt QR.
func (h *OrdersHandler) Confirmation(c echo.Context) error {
	orderID, err := strconv.Atoi(c.QueryParam("order"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order reference")
	}
	billID, err := strconv.Atoi(c.QueryParam("bill"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bill reference")
	}

	return c.Render(http.StatusOK, "confirmation",
		newPage(c, "Order placed", confirmationPage{OrderID: orderID, BillID: billID}))
}

// ReceiptPNG serves the QR image linking back to the confirmation page.
func (h *OrdersHandler) ReceiptPNG(c echo.Context) error {
	orderID, err := strconv.Atoi(c.QueryParam("order"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order reference")
	}
	billID, err := strconv.Atoi(c.QueryParam("bill"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bill reference")
	}

	png, err := h.checkout.ReceiptPNG(orderID, billID)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

type myOrdersPage struct {
	Orders []ports.OrderSummary
}

// MyOrders renders the customer's order history, newest first.
func (h *OrdersHandler) MyOrders(c echo.Context) error {
	orders, err := h.history.MyOrders(c.Request().Context(), customerID(c))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "my_orders", newPage(c, "My orders", myOrdersPage{Orders: orders}))
}
