package client

import (
	"context"
	"time"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// Session is the authenticated session returned by register and login.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// Register creates an account and stores the session token on the
// client for subsequent requests.
func (c *Client) Register(ctx context.Context, email, name, password string) (*Session, error) {
	body := map[string]string{"email": email, "name": name, "password": password}
	var s Session
	if err := c.post(ctx, "/api/auth/register", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Login authenticates and stores the session token on the client for
// subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s Session
	if err := c.post(ctx, "/api/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Me returns the account behind the current session token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Usage returns the current day's metered usage summary.
func (c *Client) Usage(ctx context.Context) (*domain.Usage, error) {
	var u domain.Usage
	if err := c.get(ctx, "/api/billing/usage", &u); err != nil {
		return nil, err
	}
	return &u, nil
}
