package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Profile is the caller's own account as seen by the backend.
type Profile struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileUpdate changes the mutable profile fields. Empty fields are left
// untouched by the backend.
type ProfileUpdate struct {
	DisplayName string `json:"display_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// GetProfile returns the caller's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches the caller's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPut, "/users/me", update, &profile, nil); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword replaces the caller's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPost, "/users/me/password", map[string]string{
		"current_password": current,
		"new_password":     next,
	}, nil, nil)
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]Profile, error) {
	var users []Profile
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserRole replaces a user's roles. Admin only.
func (c *Client) SetUserRole(ctx context.Context, username string, roles []string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%s/roles", username), map[string][]string{
		"roles": roles,
	}, nil, nil)
}
