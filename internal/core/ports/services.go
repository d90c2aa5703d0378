package ports

import (
	"context"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// AuthService owns the dual-role login flow and the session lifecycle.
type AuthService interface {
	LoginCustomer(ctx context.Context, username, password string) (*domain.Session, error)
	LoginStaff(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) error
	Logout(ctx context.Context, sessionID string) error
}

// Totals is the single authoritative money calculation, shared by the cart
// preview and checkout.
type Totals struct {
	Subtotal    float64
	DiscountPct float64
	Discount    float64
	Tax         float64
	TaxRate     float64
	Total       float64
}

// PlaceOrderInput is one checkout attempt.
type PlaceOrderInput struct {
	SessionID     string
	CustomerID    int
	Cart          domain.Cart
	Discount      *domain.Discount // nil when no code applied
	PaymentMethod string
}

// CreatedRecords lists the backend ids a checkout attempt committed before it
// stopped, successful or not. On failure these are the orphans a
// reconciliation pass would look for.
type CreatedRecords struct {
	OrderID      int
	DetailOrders int // count of order-detail rows created
	LinkedOrder  bool
	BillID       int
	Applied      bool
	Computed     bool
}

// PlaceOrderResult reports a completed checkout.
type PlaceOrderResult struct {
	OrderID int
	BillID  int
	Totals  Totals
	Created CreatedRecords
}

// CheckoutService sequences the composite purchase transaction.
type CheckoutService interface {
	Totals(cart domain.Cart, discount *domain.Discount) Totals
	ActiveDiscounts(ctx context.Context, today string) ([]domain.Discount, error)
	FindDiscount(ctx context.Context, code, today string) (domain.Discount, error)
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
	ReceiptPNG(orderID, billID int) ([]byte, error)
}

// ReservationService drives the three-step wizard plus the customer's own
// reservation list.
type ReservationService interface {
	Draft(ctx context.Context, sessionID string) (*domain.ReservationDraft, error)
	SelectDate(ctx context.Context, sessionID, date string) (*domain.ReservationDraft, error)
	SelectTime(ctx context.Context, sessionID, timeOfDay string) (*domain.ReservationDraft, error)
	SetPartySize(ctx context.Context, sessionID string, n int) (*domain.ReservationDraft, error)
	SelectTable(ctx context.Context, sessionID string, table int) (*domain.ReservationDraft, error)
	Next(ctx context.Context, sessionID string) (*domain.ReservationDraft, error)
	Back(ctx context.Context, sessionID string) (*domain.ReservationDraft, error)
	Confirm(ctx context.Context, sessionID string, customerID int) (domain.Reservation, error)
	Mine(ctx context.Context) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id int) error
}

// OrderLine is one purchased item resolved against the menu.
type OrderLine struct {
	Name     string
	Quantity int
	Price    float64
}

// OrderSummary is one historical order assembled from four collections.
type OrderSummary struct {
	Order domain.Order
	Lines []OrderLine
	Total string // formatted amount from the bill computation, "" if unknown
}

// HistoryService assembles the customer's order history.
type HistoryService interface {
	MyOrders(ctx context.Context, customerID int) ([]OrderSummary, error)
}

// DashboardSnapshot is the staff landing page's aggregate. The whole snapshot
// fails if any underlying fetch fails; there is no partial display.
type DashboardSnapshot struct {
	Orders        int
	PendingOrders int
	Customers     int
	Reservations  int
	MenuItems     int
}

// DashboardService aggregates collection counts for the staff console.
type DashboardService interface {
	Snapshot(ctx context.Context) (DashboardSnapshot, error)
}
