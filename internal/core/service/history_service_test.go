package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub backend
// ---------------------------------------------------------------------------

type stubHistoryBackend struct {
	links        []domain.OrderCustomer
	orders       map[int]domain.Order
	details      []domain.OrderDetail
	menuItems    []domain.MenuItem
	bills        []domain.Bill
	computations []domain.BillComputation
	billsErr     error
}

func (b *stubHistoryBackend) ListOrderCustomers(_ context.Context) ([]domain.OrderCustomer, error) {
	return b.links, nil
}

func (b *stubHistoryBackend) Order(_ context.Context, id int) (domain.Order, error) {
	o, ok := b.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (b *stubHistoryBackend) ListOrderDetails(_ context.Context) ([]domain.OrderDetail, error) {
	return b.details, nil
}

func (b *stubHistoryBackend) ListMenuItems(_ context.Context) ([]domain.MenuItem, error) {
	return b.menuItems, nil
}

func (b *stubHistoryBackend) ListBills(_ context.Context) ([]domain.Bill, error) {
	if b.billsErr != nil {
		return nil, b.billsErr
	}
	return b.bills, nil
}

func (b *stubHistoryBackend) ListBillComputations(_ context.Context) ([]domain.BillComputation, error) {
	return b.computations, nil
}

func seededHistory() *stubHistoryBackend {
	return &stubHistoryBackend{
		links: []domain.OrderCustomer{
			{OrderID: 1, CustomerID: 42},
			{OrderID: 2, CustomerID: 7},
			{OrderID: 3, CustomerID: 42},
		},
		orders: map[int]domain.Order{
			1: {OrderID: 1, OrderDate: "2026-08-01T12:00:00Z", Status: "Completed"},
			2: {OrderID: 2, OrderDate: "2026-08-02T12:00:00Z", Status: "Completed"},
			3: {OrderID: 3, OrderDate: "2026-08-03T19:30:00Z", Status: "Pending"},
		},
		details: []domain.OrderDetail{
			{OrderID: 1, MenuItemID: 10, Quantity: 2},
			{OrderID: 3, MenuItemID: 11, Quantity: 1},
			{OrderID: 3, MenuItemID: 10, Quantity: 3},
		},
		menuItems: []domain.MenuItem{
			{MenuItemID: 10, Name: "Carbonara", Price: 14.5},
			{MenuItemID: 11, Name: "Tiramisu", Price: 6.0},
		},
		bills: []domain.Bill{
			{BillID: 100, OrderID: 1},
			{BillID: 101, OrderID: 3},
		},
		computations: []domain.BillComputation{
			{BillID: 100, TotalAmount: "34.22"},
			{BillID: 101, TotalAmount: "58.41"},
		},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMyOrders_JoinsAndSortsNewestFirst(t *testing.T) {
	s := NewHistoryService(seededHistory(), zerolog.Nop())

	summaries, err := s.MyOrders(context.Background(), 42)
	if err != nil {
		t.Fatalf("my orders: %v", err)
	}

	// Only the customer's own orders, newest first.
	if len(summaries) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(summaries))
	}
	if summaries[0].Order.OrderID != 3 || summaries[1].Order.OrderID != 1 {
		t.Fatalf("order: %d then %d", summaries[0].Order.OrderID, summaries[1].Order.OrderID)
	}

	newest := summaries[0]
	if len(newest.Lines) != 2 {
		t.Fatalf("lines: %+v", newest.Lines)
	}
	if newest.Lines[0].Name != "Tiramisu" || newest.Lines[0].Quantity != 1 {
		t.Fatalf("line resolution: %+v", newest.Lines[0])
	}
	if newest.Total != "58.41" {
		t.Fatalf("total: %q", newest.Total)
	}

	older := summaries[1]
	if older.Lines[0].Name != "Carbonara" || older.Lines[0].Price != 14.5 {
		t.Fatalf("line resolution: %+v", older.Lines[0])
	}
	if older.Total != "34.22" {
		t.Fatalf("total: %q", older.Total)
	}
}

func TestMyOrders_NoOrders(t *testing.T) {
	s := NewHistoryService(seededHistory(), zerolog.Nop())
	summaries, err := s.MyOrders(context.Background(), 999)
	if err != nil {
		t.Fatalf("my orders: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected none, got %+v", summaries)
	}
}

func TestMyOrders_AnyFetchFailureFailsAssembly(t *testing.T) {
	b := seededHistory()
	b.billsErr = errors.New("bills down")
	s := NewHistoryService(b, zerolog.Nop())

	if _, err := s.MyOrders(context.Background(), 42); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMyOrders_MissingBillLeavesTotalEmpty(t *testing.T) {
	b := seededHistory()
	b.bills = nil
	b.computations = nil
	s := NewHistoryService(b, zerolog.Nop())

	summaries, err := s.MyOrders(context.Background(), 42)
	if err != nil {
		t.Fatalf("my orders: %v", err)
	}
	for _, sum := range summaries {
		if sum.Total != "" {
			t.Fatalf("total fabricated: %+v", sum)
		}
	}
}
