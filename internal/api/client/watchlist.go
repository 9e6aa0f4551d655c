package client

import (
	"context"
	"net/url"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// Watchlist is the saved-items response: the raw items plus any
// catalog products they resolve to.
type Watchlist struct {
	Items    []domain.WatchItem `json:"items"`
	Products []*domain.Product  `json:"products"`
}

// ListWatchlist returns the authenticated user's saved items.
func (c *Client) ListWatchlist(ctx context.Context) (*Watchlist, error) {
	var w Watchlist
	if err := c.get(ctx, "/api/watchlist", &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// AddWatch saves a product to the watchlist by ID or ASIN.
func (c *Client) AddWatch(ctx context.Context, idOrAsin string) (*domain.WatchItem, error) {
	body := map[string]string{"asin": idOrAsin}
	var resp struct {
		Item domain.WatchItem `json:"watchlistItem"`
	}
	if err := c.post(ctx, "/api/watchlist", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// RemoveWatch deletes a saved item by product ID or ASIN.
func (c *Client) RemoveWatch(ctx context.Context, idOrAsin string) error {
	return c.del(ctx, "/api/watchlist/"+url.PathEscape(idOrAsin), nil)
}
