package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tableside/restaurant-console/internal/api/metrics"
	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// CheckoutService turns a cart into the backend's composite purchase
// transaction: the backend has no atomic endpoint, so one logical order is a
// strict sequence of writes. The sequence aborts on the first failure and
// never attempts compensating deletes — every write carries the attempt's
// idempotency key instead, so a retry cannot double-create, and the result
// records what was committed for backend-side reconciliation.
type CheckoutService struct {
	backend   ports.CheckoutBackend
	carts     ports.CartStore
	taxRate   float64
	publicURL string
	now       func() time.Time
	newKey    func() string
	log       zerolog.Logger
}

func NewCheckoutService(b ports.CheckoutBackend, carts ports.CartStore, taxRate float64, publicURL string, log zerolog.Logger) *CheckoutService {
	if taxRate <= 0 {
		taxRate = 0.18
	}
	return &CheckoutService{
		backend:   b,
		carts:     carts,
		taxRate:   taxRate,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
		newKey:    uuid.NewString,
		log:       log,
	}
}

// Totals computes the one authoritative money breakdown, used identically by
// the cart preview and the committed bill: discount off the subtotal first,
// tax on what remains.
func (s *CheckoutService) Totals(cart domain.Cart, discount *domain.Discount) ports.Totals {
	t := ports.Totals{Subtotal: cart.Subtotal(), TaxRate: s.taxRate}
	if discount != nil {
		t.DiscountPct = discount.Percentage
		t.Discount = t.Subtotal * discount.Percentage / 100
	}
	t.Tax = (t.Subtotal - t.Discount) * s.taxRate
	t.Total = t.Subtotal - t.Discount + t.Tax
	return t
}

// ActiveDiscounts returns the discounts whose validity window covers today
// (YYYY-MM-DD; the dates are ISO strings so plain comparison orders them).
func (s *CheckoutService) ActiveDiscounts(ctx context.Context, today string) ([]domain.Discount, error) {
	all, err := s.backend.ListDiscounts(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Discount, 0, len(all))
	for _, d := range all {
		if d.StartDate <= today && today <= d.EndDate {
			active = append(active, d)
		}
	}
	return active, nil
}

// FindDiscount resolves a code against today's active discounts,
// case-insensitively and ignoring surrounding whitespace.
func (s *CheckoutService) FindDiscount(ctx context.Context, code, today string) (domain.Discount, error) {
	active, err := s.ActiveDiscounts(ctx, today)
	if err != nil {
		return domain.Discount{}, err
	}
	want := strings.ToLower(strings.TrimSpace(code))
	for _, d := range active {
		if strings.ToLower(strings.TrimSpace(d.Name)) == want {
			return d, nil
		}
	}
	return domain.Discount{}, domain.ErrDiscountNotFound
}

// PlaceOrder runs the checkout sequence:
// order → order-details (one per line, in cart order) → order-customer link →
// bill → applies (only with a discount) → bill-computation.
// On success the cart is cleared. On failure the partial Created record rides
// along with the error.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	if in.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	totals := s.Totals(in.Cart, in.Discount)
	key := s.newKey()
	now := s.now().UTC().Format(time.RFC3339)
	created := ports.CreatedRecords{}

	fail := func(step string, err error) (*ports.PlaceOrderResult, error) {
		metrics.CheckoutsTotal.WithLabelValues(step).Inc()
		s.log.Error().Err(err).
			Str("step", step).
			Str("idempotency_key", key).
			Int("order_id", created.OrderID).
			Int("bill_id", created.BillID).
			Msg("checkout aborted")
		return &ports.PlaceOrderResult{Totals: totals, Created: created},
			fmt.Errorf("checkout %s: %w", step, err)
	}

	order, err := s.backend.CreateOrder(ctx, domain.Order{OrderDate: now, Status: "Pending"}, key)
	if err != nil {
		return fail("order", err)
	}
	created.OrderID = order.OrderID

	for _, line := range in.Cart.Lines {
		detail := domain.OrderDetail{OrderID: order.OrderID, MenuItemID: line.MenuItemID, Quantity: line.Quantity}
		if _, err := s.backend.CreateOrderDetail(ctx, detail, key); err != nil {
			return fail("order_detail", err)
		}
		created.DetailOrders++
	}

	link := domain.OrderCustomer{OrderID: order.OrderID, CustomerID: in.CustomerID}
	if err := s.backend.CreateOrderCustomer(ctx, link, key); err != nil {
		return fail("order_customer", err)
	}
	created.LinkedOrder = true

	bill, err := s.backend.CreateBill(ctx, domain.Bill{
		OrderID:             order.OrderID,
		TotalBeforeDiscount: Money(totals.Subtotal),
		DiscountAmount:      Money(totals.Discount),
		TaxAmount:           Money(totals.Tax),
		PaymentMethod:       in.PaymentMethod,
		PaymentDate:         now,
	}, key)
	if err != nil {
		return fail("bill", err)
	}
	created.BillID = bill.BillID

	if in.Discount != nil {
		applies := domain.Applies{BillID: bill.BillID, DiscountID: in.Discount.DiscountID}
		if err := s.backend.CreateApplies(ctx, applies, key); err != nil {
			return fail("applies", err)
		}
		created.Applied = true
	}

	computation := domain.BillComputation{BillID: bill.BillID, TotalAmount: Money(totals.Total)}
	if err := s.backend.CreateBillComputation(ctx, computation, key); err != nil {
		return fail("bill_computation", err)
	}
	created.Computed = true

	if err := s.carts.Clear(ctx, in.SessionID); err != nil {
		s.log.Warn().Err(err).Msg("cart clear failed after checkout")
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Int("order_id", order.OrderID).
		Int("bill_id", bill.BillID).
		Str("total", Money(totals.Total)).
		Msg("order placed")

	return &ports.PlaceOrderResult{
		OrderID: order.OrderID,
		BillID:  bill.BillID,
		Totals:  totals,
		Created: created,
	}, nil
}

// ReceiptPNG renders the confirmation link as a QR code for the receipt.
func (s *CheckoutService) ReceiptPNG(orderID, billID int) ([]byte, error) {
	target := fmt.Sprintf("%s/orders/confirmation?order=%d&bill=%d", s.publicURL, orderID, billID)
	return qrcode.Encode(target, qrcode.Medium, 256)
}

// Money formats an amount the way the backend's decimal columns expect:
// two decimals, plain notation.
func Money(v float64) string {
	return strconv.FormatFloat(v+1e-9, 'f', 2, 64)
}
