package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Login exchanges credentials for a token and account snapshot.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", payload)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var resp struct {
		envelope
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var resp struct {
		envelope
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

// VerifyRole fetches the authoritative role/status/image for the token's
// account. This is the reconciliation source for the session cache.
func (c *Client) VerifyRole(ctx context.Context, token string) (*VerifiedUser, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/auth/verify-role", token, nil)
	if err != nil {
		return nil, fmt.Errorf("verify role: %w", err)
	}

	var resp struct {
		envelope
		User VerifiedUser `json:"user"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("verify role: %w", err)
	}
	return &resp.User, nil
}

// UpdateProfile submits edited profile fields and returns the saved
// account.
func (c *Client) UpdateProfile(ctx context.Context, token, name, phone, address string) (*User, error) {
	payload := map[string]string{
		"name":    name,
		"phone":   phone,
		"address": address,
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/update-profile", token, payload)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	var resp struct {
		envelope
		User User `json:"user"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &resp.User, nil
}

// UploadProfileImage uploads a new avatar and returns its reference.
func (c *Client) UploadProfileImage(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	body, err := c.doMultipart(ctx, "/auth/upload-profile-image", token, "image", filename, file, nil)
	if err != nil {
		return "", fmt.Errorf("upload profile image: %w", err)
	}

	var resp struct {
		envelope
		ProfileImage string `json:"profileImage"`
	}
	if err := decode(body, &resp); err != nil {
		return "", fmt.Errorf("upload profile image: %w", err)
	}
	return resp.ProfileImage, nil
}
