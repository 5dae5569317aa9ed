package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CreateOrder submits the checkout payload and returns the new order id.
// Unlike the other endpoints this one answers with a bare {orderId}
// object rather than the success envelope.
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (uint, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/orders/create", token, req)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	var resp struct {
		OrderID uint `json:"orderId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("create order: failed to unmarshal response: %w", err)
	}
	return resp.OrderID, nil
}

// MyOrders fetches the order history of the token's account.
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/orders/my", token, nil)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}

	var resp struct {
		envelope
		Orders []Order `json:"orders"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return resp.Orders, nil
}
