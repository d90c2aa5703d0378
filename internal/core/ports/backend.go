// Package ports declares the boundaries between the console's core services
// and everything outside them: the restaurant backend adapter on one side,
// the session/cart stores and page handlers on the other.
package ports

import (
	"context"
	"encoding/json"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// TokenPair is a backend-issued JWT access/refresh pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// StaffLoginResult bundles the staff login's tokens and profile.
type StaffLoginResult struct {
	Access  string
	Refresh string
	Profile domain.Profile
}

// RegisterInput is the new-customer signup payload.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Contact   string `json:"contact"`
}

// AuthBackend is the slice of the backend the auth service uses. Me takes the
// freshly issued access token explicitly because it runs before any session
// exists to attach one.
type AuthBackend interface {
	CustomerLogin(ctx context.Context, username, password string) (TokenPair, error)
	StaffLogin(ctx context.Context, email, password string) (StaffLoginResult, error)
	Me(ctx context.Context, accessToken string) (domain.Profile, error)
	Register(ctx context.Context, in RegisterInput) error
}

// CheckoutBackend is the slice of the backend the checkout sequence writes
// through. Every write carries the attempt's idempotency key.
type CheckoutBackend interface {
	CreateOrder(ctx context.Context, o domain.Order, key string) (domain.Order, error)
	CreateOrderDetail(ctx context.Context, d domain.OrderDetail, key string) (domain.OrderDetail, error)
	CreateOrderCustomer(ctx context.Context, oc domain.OrderCustomer, key string) error
	CreateBill(ctx context.Context, b domain.Bill, key string) (domain.Bill, error)
	CreateApplies(ctx context.Context, a domain.Applies, key string) error
	CreateBillComputation(ctx context.Context, bc domain.BillComputation, key string) error
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
}

// ReservationInput is the composite reservation submitted in one call.
type ReservationInput struct {
	ReservationDateTime string `json:"ReservationDateTime"`
	NumPeople           int    `json:"NumPeople"`
	TableNumber         int    `json:"TableNumber"`
	CustomerID          int    `json:"CustomerID"`
}

// ReservationBackend covers the reservation-specific endpoints.
type ReservationBackend interface {
	TimeSlots(ctx context.Context, date string) ([]string, error)
	AvailableTables(ctx context.Context, date, timeOfDay string) ([]int, error)
	CreateReservation(ctx context.Context, in ReservationInput) (domain.Reservation, error)
	MyReservations(ctx context.Context) ([]domain.Reservation, error)
	CancelReservation(ctx context.Context, id int) error
}

// HistoryBackend covers the collections the order-history page joins.
type HistoryBackend interface {
	ListOrderCustomers(ctx context.Context) ([]domain.OrderCustomer, error)
	Order(ctx context.Context, id int) (domain.Order, error)
	ListOrderDetails(ctx context.Context) ([]domain.OrderDetail, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListBills(ctx context.Context) ([]domain.Bill, error)
	ListBillComputations(ctx context.Context) ([]domain.BillComputation, error)
}

// CollectionLister is the schema-free view the dashboard counts rows through.
type CollectionLister interface {
	ListRaw(ctx context.Context, resource string) ([]json.RawMessage, error)
}
