package amazon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/viraladmedia/amzpulse/internal/metrics"
	"github.com/viraladmedia/amzpulse/pkg/normalize"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// APIClient implements Source against a JSON product-data API.
type APIClient struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	rateLimiter *RateLimiter
}

// APIOption configures the APIClient.
type APIOption func(*APIClient)

// WithAPIHTTPClient overrides the default HTTP client.
func WithAPIHTTPClient(hc *http.Client) APIOption {
	return func(c *APIClient) {
		c.client = hc
	}
}

// WithAPIRateLimiter injects a rate limiter covering per-second and
// daily call limits. When set, every Lookup goes through Wait first.
func WithAPIRateLimiter(r *RateLimiter) APIOption {
	return func(c *APIClient) {
		c.rateLimiter = r
	}
}

// NewAPIClient creates a product-data API client rooted at baseURL.
func NewAPIClient(baseURL, apiKey string, opts ...APIOption) *APIClient {
	c := &APIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *APIClient) Lookup(ctx context.Context, asin string) (*domain.Product, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.SourceDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.SourceCallsTotal.Inc()
		metrics.SourceDailyUsage.Set(float64(c.rateLimiter.Used()))
	}

	u := c.baseURL + "/products/" + url.PathEscape(asin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing lookup request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("asin %s: %w", asin, ErrNotFound)
	default:
		return nil, fmt.Errorf("product API error (status %d): %s", resp.StatusCode, string(body))
	}

	p, err := normalize.FromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("normalizing product %s: %w", asin, err)
	}
	return p, nil
}

func (c *APIClient) Name() string { return "api" }
