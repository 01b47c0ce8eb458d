package api

import (
	"context"
	"fmt"
	"net/http"
)

// AuthResult is the backend's response to every flow that issues a token:
// password login, registration and OAuth sign-in.
type AuthResult struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
}

// Login exchanges credentials for a signed token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result, nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginWithGoogle exchanges a Google ID token for a backend session token,
// registering the account on first sign-in.
func (c *Client) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/google", map[string]string{
		"id_token": idToken,
	}, &result, nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RequestPasswordReset asks the backend to mail a reset token.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset", map[string]string{
		"email": email,
	}, nil, nil)
}

// ResetPassword completes a password reset with the mailed token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset/confirm", map[string]string{
		"token":    resetToken,
		"password": newPassword,
	}, nil, nil)
}

// ValidateToken checks a bearer token against the backend. Any 2xx means
// the token is accepted; any other response or a transport failure means
// it must not be trusted. This implements the session gate's
// TokenValidator, so it always goes to the origin rather than the cache
// and uses the supplied token instead of the client's own.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/validate-token", nil, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: "token rejected"}
	}

	return nil
}
