package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Threads fetches the forum thread list.
func (c *Client) Threads(ctx context.Context) ([]Thread, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/forum/threads", "", nil)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	var resp struct {
		envelope
		Threads []Thread `json:"threads"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return resp.Threads, nil
}

// CreateThread opens a new discussion thread.
func (c *Client) CreateThread(ctx context.Context, token, title, content string) (*Thread, error) {
	payload := map[string]string{
		"title":   title,
		"content": content,
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/forum/threads", token, payload)
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	var resp struct {
		envelope
		Thread Thread `json:"thread"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return &resp.Thread, nil
}

// Reply appends a comment to a thread.
func (c *Client) Reply(ctx context.Context, token string, threadID uint, content string) (*Comment, error) {
	payload := map[string]string{
		"content": content,
	}
	path := fmt.Sprintf("/forum/threads/%d/replies", threadID)
	body, err := c.doJSON(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}

	var resp struct {
		envelope
		Comment Comment `json:"comment"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	return &resp.Comment, nil
}

// Like toggles the like of a thread for the token's account.
func (c *Client) Like(ctx context.Context, token string, threadID uint) error {
	path := fmt.Sprintf("/forum/threads/%d/like", threadID)
	body, err := c.doJSON(ctx, http.MethodPost, path, token, nil)
	if err != nil {
		return fmt.Errorf("like: %w", err)
	}
	if err := decode(body, nil); err != nil {
		return fmt.Errorf("like: %w", err)
	}
	return nil
}
