package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// HistoryService assembles the customer's order history. The backend exposes
// no join endpoint, so the page is stitched client-side: the order-customer
// links select the customer's order ids, then the supporting collections are
// fetched concurrently and the per-order detail lookups fan out after them.
type HistoryService struct {
	backend ports.HistoryBackend
	log     zerolog.Logger
}

func NewHistoryService(b ports.HistoryBackend, log zerolog.Logger) *HistoryService {
	return &HistoryService{backend: b, log: log}
}

// MyOrders returns the customer's orders, newest first, each with its
// resolved line items and billed total. Any underlying fetch failure fails
// the whole assembly.
func (s *HistoryService) MyOrders(ctx context.Context, customerID int) ([]ports.OrderSummary, error) {
	links, err := s.backend.ListOrderCustomers(ctx)
	if err != nil {
		return nil, err
	}

	var orderIDs []int
	for _, l := range links {
		if l.CustomerID == customerID {
			orderIDs = append(orderIDs, l.OrderID)
		}
	}
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var (
		details      []domain.OrderDetail
		menuItems    []domain.MenuItem
		bills        []domain.Bill
		computations []domain.BillComputation
		orders       = make([]domain.Order, len(orderIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details, err = s.backend.ListOrderDetails(gctx)
		return err
	})
	g.Go(func() (err error) {
		menuItems, err = s.backend.ListMenuItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		bills, err = s.backend.ListBills(gctx)
		return err
	})
	g.Go(func() (err error) {
		computations, err = s.backend.ListBillComputations(gctx)
		return err
	})
	for i, id := range orderIDs {
		i, id := i, id
		g.Go(func() (err error) {
			orders[i], err = s.backend.Order(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	itemsByID := make(map[int]domain.MenuItem, len(menuItems))
	for _, m := range menuItems {
		itemsByID[m.MenuItemID] = m
	}
	billByOrder := make(map[int]domain.Bill, len(bills))
	for _, b := range bills {
		billByOrder[b.OrderID] = b
	}
	totalByBill := make(map[int]string, len(computations))
	for _, c := range computations {
		totalByBill[c.BillID] = c.TotalAmount
	}
	detailsByOrder := make(map[int][]domain.OrderDetail)
	for _, d := range details {
		detailsByOrder[d.OrderID] = append(detailsByOrder[d.OrderID], d)
	}

	summaries := make([]ports.OrderSummary, 0, len(orders))
	for _, o := range orders {
		sum := ports.OrderSummary{Order: o}
		for _, d := range detailsByOrder[o.OrderID] {
			line := ports.OrderLine{Quantity: d.Quantity}
			if item, ok := itemsByID[d.MenuItemID]; ok {
				line.Name = item.Name
				line.Price = item.Price
			}
			sum.Lines = append(sum.Lines, line)
		}
		if bill, ok := billByOrder[o.OrderID]; ok {
			sum.Total = totalByBill[bill.BillID]
		}
		summaries = append(summaries, sum)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Order.OrderDate > summaries[j].Order.OrderDate
	})
	return summaries, nil
}
