package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Products fetches the marketplace listing.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/market/products", "", nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var resp struct {
		envelope
		Products []Product `json:"products"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return resp.Products, nil
}

// Categories fetches the marketplace category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/market/categories", "", nil)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var resp struct {
		envelope
		Categories []Category `json:"categories"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return resp.Categories, nil
}
