package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AdminResource names a back-office collection the admin screens manage.
type AdminResource string

const (
	AdminProducts   AdminResource = "products"
	AdminUsers      AdminResource = "users"
	AdminOrders     AdminResource = "orders"
	AdminCategories AdminResource = "categories"
	AdminReviews    AdminResource = "reviews"
)

// KnownAdminResource reports whether the resource is one the backend
// exposes under /admin.
func KnownAdminResource(resource string) bool {
	switch AdminResource(resource) {
	case AdminProducts, AdminUsers, AdminOrders, AdminCategories, AdminReviews:
		return true
	}
	return false
}

// AdminRequest proxies a back-office CRUD call. The admin screens are thin
// forms over REST, so the gateway passes the body through untyped and
// returns the raw success payload.
func (c *Client) AdminRequest(ctx context.Context, token, method, subpath string, payload interface{}) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, method, "/admin"+subpath, token, payload)
	if err != nil {
		return nil, fmt.Errorf("admin %s %s: %w", method, subpath, err)
	}
	if err := decode(body, nil); err != nil {
		return nil, fmt.Errorf("admin %s %s: %w", method, subpath, err)
	}
	return json.RawMessage(body), nil
}

// AdminListOrders fetches every order, typed for the export screen.
func (c *Client) AdminListOrders(ctx context.Context, token string) ([]Order, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/admin/orders", token, nil)
	if err != nil {
		return nil, fmt.Errorf("admin orders: %w", err)
	}

	var resp struct {
		envelope
		Orders []Order `json:"orders"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("admin orders: %w", err)
	}
	return resp.Orders, nil
}
