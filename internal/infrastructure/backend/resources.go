package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

// List fetches a whole collection decoded into []T.
func List[T any](ctx context.Context, c *Client, resource string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, resource, c.collectionPath(resource), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single record by id.
func Get[T any](ctx context.Context, c *Client, resource string, id int) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, resource, c.itemPath(resource, id), nil, &out)
	return out, err
}

// Create posts a record and decodes the server's echo, which carries any
// server-assigned fields (notably the primary key).
func Create[T any](ctx context.Context, c *Client, resource string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPost, resource, c.collectionPath(resource), body, &out, opts...)
	return out, err
}

// Update puts a full record replacement and decodes the server's echo.
func Update[T any](ctx context.Context, c *Client, resource string, id int, body any) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPut, resource, c.itemPath(resource, id), body, &out)
	return out, err
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, resource string, id int) error {
	return c.do(ctx, http.MethodDelete, resource, c.itemPath(resource, id), nil, nil)
}

// ListRaw fetches a collection without decoding, for callers that only need
// counts or schema-free rows.
func (c *Client) ListRaw(ctx context.Context, resource string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := c.do(ctx, http.MethodGet, resource, c.collectionPath(resource), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collection binds a client to one named resource with a fixed record type,
// satisfying the resource store's backend contract.
type Collection[T any] struct {
	client *Client
	name   string
}

func NewCollection[T any](client *Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

func (r *Collection[T]) Name() string { return r.name }

func (r *Collection[T]) List(ctx context.Context) ([]T, error) {
	return List[T](ctx, r.client, r.name)
}

func (r *Collection[T]) Get(ctx context.Context, id int) (T, error) {
	return Get[T](ctx, r.client, r.name, id)
}

func (r *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	return Create[T](ctx, r.client, r.name, rec)
}

func (r *Collection[T]) Update(ctx context.Context, id int, rec T) (T, error) {
	return Update[T](ctx, r.client, r.name, id, rec)
}

func (r *Collection[T]) Delete(ctx context.Context, id int) error {
	return r.client.Delete(ctx, r.name, id)
}
