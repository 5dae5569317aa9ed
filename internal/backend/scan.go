package backend

import (
	"context"
	"fmt"
	"io"
)

// ScanPlant uploads a plant photo for classification. The model lives
// entirely upstream; the gateway only carries the image and the verdict.
func (c *Client) ScanPlant(ctx context.Context, token, filename string, file io.Reader) (*ScanResult, error) {
	body, err := c.doMultipart(ctx, "/scan/predict", token, "image", filename, file, nil)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	var resp struct {
		envelope
		Result ScanResult `json:"result"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &resp.Result, nil
}
