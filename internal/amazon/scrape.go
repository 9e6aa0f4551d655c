package amazon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/viraladmedia/amzpulse/pkg/normalize"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

const defaultScrapeBaseURL = "https://www.amazon.com"

var scrapeUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// ScrapeClient implements Source by parsing product detail pages. It is
// the fallback when no API credentials are configured.
type ScrapeClient struct {
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
	uaIndex     func() int
}

// ScrapeOption configures the ScrapeClient.
type ScrapeOption func(*ScrapeClient)

// WithScrapeBaseURL overrides the marketplace host.
func WithScrapeBaseURL(u string) ScrapeOption {
	return func(c *ScrapeClient) {
		c.baseURL = u
	}
}

// WithScrapeHTTPClient overrides the default HTTP client.
func WithScrapeHTTPClient(hc *http.Client) ScrapeOption {
	return func(c *ScrapeClient) {
		c.client = hc
	}
}

// WithScrapeRateLimiter injects a rate limiter applied before each
// page fetch.
func WithScrapeRateLimiter(r *RateLimiter) ScrapeOption {
	return func(c *ScrapeClient) {
		c.rateLimiter = r
	}
}

// NewScrapeClient creates a page-scrape product source.
func NewScrapeClient(opts ...ScrapeOption) *ScrapeClient {
	c := &ScrapeClient{
		baseURL: defaultScrapeBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		uaIndex: func() int { return int(time.Now().UnixNano()) % len(scrapeUserAgents) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ScrapeClient) Lookup(ctx context.Context, asin string) (*domain.Product, error) {
	asin = strings.ToUpper(strings.TrimSpace(asin))
	if asin == "" {
		return nil, fmt.Errorf("asin is required")
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	endpoint := c.baseURL + "/dp/" + url.PathEscape(asin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgents[c.uaIndex()])
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching product page: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("asin %s: %w", asin, ErrNotFound)
	default:
		return nil, fmt.Errorf("unexpected status %d scraping %s", resp.StatusCode, endpoint)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing product page: %w", err)
	}

	name := scrapeText(doc.Find("#productTitle"))
	if name == "" {
		return nil, fmt.Errorf("asin %s: %w", asin, ErrNotFound)
	}

	price := parseMoney(firstNonEmpty(
		scrapeText(doc.Find("span#priceblock_ourprice")),
		scrapeText(doc.Find("span#priceblock_dealprice")),
		scrapeText(doc.Find("span.a-price span.a-offscreen").First()),
	))

	p := &domain.Product{
		ID:       asin,
		ASIN:     asin,
		Name:     name,
		Brand:    parseBrand(scrapeText(doc.Find("#bylineInfo"))),
		Category: "Misc",
		Price:    price,
		Image:    doc.Find("img#landingImage").AttrOr("src", normalize.PlaceholderImage(asin)),
		Rating:   parseRating(scrapeText(doc.Find("span[data-hook='rating-out-of-text']"))),
		Reviews:  parseCount(scrapeText(doc.Find("#acrCustomerReviewText"))),

		// Fees are not on the page; estimate them from the price the way
		// the mock generator does so the profit calculator stays usable.
		ReferralFee:    round2(price * 0.15),
		FulfillmentFee: 3.50,
		StorageFee:     0.50,

		Sellers:         1,
		SeasonalityTags: []domain.Season{domain.SeasonEvergreen},
	}
	if p.Brand == "" {
		p.Brand = "Unknown"
	}
	if p.Rating == 0 {
		p.Rating = 4.0
	}
	return p, nil
}

func (c *ScrapeClient) Name() string { return "scrape" }

func scrapeText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseMoney extracts the first decimal number from strings like
// "$249.99" or "$1,249.99".
func parseMoney(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ',':
			// thousands separator
		case b.Len() > 0:
			// stop at the first non-numeric rune after the number
			v, _ := strconv.ParseFloat(b.String(), 64)
			return v
		}
	}
	v, _ := strconv.ParseFloat(b.String(), 64)
	return v
}

// parseRating extracts the leading number from "4.3 out of 5".
func parseRating(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, _ := strconv.ParseFloat(fields[0], 64)
	if v < 0 || v > 5 {
		return 0
	}
	return v
}

// parseCount extracts the integer from "1,542 ratings".
func parseCount(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(strings.ReplaceAll(fields[0], ",", ""))
	return n
}

// parseBrand strips the "Visit the X Store" and "Brand: X" wrappers.
func parseBrand(s string) string {
	s = strings.TrimPrefix(s, "Visit the ")
	s = strings.TrimSuffix(s, " Store")
	s = strings.TrimPrefix(s, "Brand: ")
	return strings.TrimSpace(s)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
