package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// DashboardService aggregates the staff landing page's counters with four
// concurrent collection fetches. The aggregation is all-or-nothing: one
// failed fetch fails the snapshot, there is no partial display.
type DashboardService struct {
	backend ports.CollectionLister
	log     zerolog.Logger
}

func NewDashboardService(b ports.CollectionLister, log zerolog.Logger) *DashboardService {
	return &DashboardService{backend: b, log: log}
}

func (s *DashboardService) Snapshot(ctx context.Context) (ports.DashboardSnapshot, error) {
	var (
		orders       []json.RawMessage
		customers    []json.RawMessage
		reservations []json.RawMessage
		menuItems    []json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.backend.ListRaw(gctx, domain.ResOrders)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.backend.ListRaw(gctx, domain.ResCustomers)
		return err
	})
	g.Go(func() (err error) {
		reservations, err = s.backend.ListRaw(gctx, domain.ResReservations)
		return err
	})
	g.Go(func() (err error) {
		menuItems, err = s.backend.ListRaw(gctx, domain.ResMenuItems)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("dashboard aggregation failed")
		return ports.DashboardSnapshot{}, err
	}

	snapshot := ports.DashboardSnapshot{
		Orders:       len(orders),
		Customers:    len(customers),
		Reservations: len(reservations),
		MenuItems:    len(menuItems),
	}
	for _, raw := range orders {
		var o struct {
			Status string `json:"Status"`
		}
		if json.Unmarshal(raw, &o) == nil && o.Status == "Pending" {
			snapshot.PendingOrders++
		}
	}
	return snapshot, nil
}
