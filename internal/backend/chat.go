package backend

import (
	"context"
	"fmt"
	"net/http"
)

// SendChatMessage relays a chatbot message and returns the assistant
// reply.
func (c *Client) SendChatMessage(ctx context.Context, token, message string) (string, error) {
	payload := map[string]string{
		"message": message,
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/chat/messages", token, payload)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	var resp struct {
		envelope
		Reply string `json:"reply"`
	}
	if err := decode(body, &resp); err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return resp.Reply, nil
}
