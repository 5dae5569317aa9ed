package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/nutrileaf/nutrileaf-client/config"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// Client talks to the upstream NutriLeaf backend. The gateway never
// implements business logic itself; every authoritative operation goes
// through here.
type Client struct {
	config     config.BackendConfig
	httpClient *http.Client
}

// NewClient creates a backend client with the configured base URL and an
// overall request timeout.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// envelope is the common response wrapper every backend endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// doJSON performs a JSON request. A non-empty token is sent as a bearer
// header. The raw response body is returned for endpoint-specific
// decoding; HTTP-level failures are mapped onto the package sentinels.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req)
}

// doMultipart uploads a single file plus optional extra fields.
func (c *Client) doMultipart(ctx context.Context, path, token, fieldName, filename string, file io.Reader, extra map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	for key, value := range extra {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write multipart field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	logger.Debug("Backend request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		message := string(body)
		if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
			message = env.Message
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, message)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", ErrNotFound, message)
		default:
			return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, message)
		}
	}

	return body, nil
}

// decode unmarshals a success-enveloped response, converting an explicit
// success=false answer into ErrRejected.
func decode(body []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !env.Success {
		message := env.Message
		if message == "" {
			message = "request refused"
		}
		return fmt.Errorf("%w: %s", ErrRejected, message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
