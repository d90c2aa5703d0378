package backend

import (
	"context"

	"github.com/tableside/restaurant-console/internal/core/domain"
)

// Checkout adapter: the six write endpoints of the composite purchase
// transaction. Every call forwards the attempt's idempotency key so a retried
// attempt cannot double-create server-side.

func (c *Client) CreateOrder(ctx context.Context, o domain.Order, key string) (domain.Order, error) {
	return Create[domain.Order](ctx, c, domain.ResOrders, o, WithIdempotencyKey(key))
}

func (c *Client) CreateOrderDetail(ctx context.Context, d domain.OrderDetail, key string) (domain.OrderDetail, error) {
	return Create[domain.OrderDetail](ctx, c, domain.ResOrderDetails, d, WithIdempotencyKey(key))
}

func (c *Client) CreateOrderCustomer(ctx context.Context, oc domain.OrderCustomer, key string) error {
	_, err := Create[domain.OrderCustomer](ctx, c, domain.ResOrderCustomers, oc, WithIdempotencyKey(key))
	return err
}

func (c *Client) CreateBill(ctx context.Context, b domain.Bill, key string) (domain.Bill, error) {
	return Create[domain.Bill](ctx, c, domain.ResBills, b, WithIdempotencyKey(key))
}

func (c *Client) CreateApplies(ctx context.Context, a domain.Applies, key string) error {
	_, err := Create[domain.Applies](ctx, c, domain.ResApplies, a, WithIdempotencyKey(key))
	return err
}

func (c *Client) CreateBillComputation(ctx context.Context, bc domain.BillComputation, key string) error {
	_, err := Create[domain.BillComputation](ctx, c, domain.ResBillComputations, bc, WithIdempotencyKey(key))
	return err
}

func (c *Client) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	return List[domain.Discount](ctx, c, domain.ResDiscounts)
}

// History adapter: the collections the my-orders page joins.

func (c *Client) ListOrderCustomers(ctx context.Context) ([]domain.OrderCustomer, error) {
	return List[domain.OrderCustomer](ctx, c, domain.ResOrderCustomers)
}

func (c *Client) Order(ctx context.Context, id int) (domain.Order, error) {
	return Get[domain.Order](ctx, c, domain.ResOrders, id)
}

func (c *Client) ListOrderDetails(ctx context.Context) ([]domain.OrderDetail, error) {
	return List[domain.OrderDetail](ctx, c, domain.ResOrderDetails)
}

func (c *Client) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return List[domain.MenuItem](ctx, c, domain.ResMenuItems)
}

func (c *Client) ListBills(ctx context.Context) ([]domain.Bill, error) {
	return List[domain.Bill](ctx, c, domain.ResBills)
}

func (c *Client) ListBillComputations(ctx context.Context) ([]domain.BillComputation, error) {
	return List[domain.BillComputation](ctx, c, domain.ResBillComputations)
}
