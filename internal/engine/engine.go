// Package engine runs the scheduled watchlist refresh that keeps
// price and rank histories rolling.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/viraladmedia/amzpulse/internal/amazon"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/metrics"
	"github.com/viraladmedia/amzpulse/internal/notify"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// historyWindow is the number of daily samples a product keeps.
const historyWindow = 91

const dateLabel = "Jan 2"

// defaultDropThreshold is the price-drop percentage that triggers a
// notification.
const defaultDropThreshold = 10.0

// Engine refreshes watched products from the upstream source and
// extends their histories by one sample per run.
type Engine struct {
	store    store.Store
	source   amazon.Source
	catalog  *catalog.Catalog
	notifier notify.Notifier
	log      *slog.Logger

	staggerOffset time.Duration
	dropThreshold float64
	nowFunc       func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithStaggerOffset sets the delay between refreshing each product.
func WithStaggerOffset(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.staggerOffset = d
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// WithNotifier sets the price-drop alert channel.
func WithNotifier(n notify.Notifier) EngineOption {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithDropThreshold sets the price-drop percentage that triggers an
// alert.
func WithDropThreshold(pct float64) EngineOption {
	return func(e *Engine) {
		e.dropThreshold = pct
	}
}

// New creates an Engine with injected dependencies.
func New(s store.Store, src amazon.Source, cat *catalog.Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		store:         s,
		source:        src,
		catalog:       cat,
		log:           slog.Default(),
		staggerOffset: 30 * time.Second,
		dropThreshold: defaultDropThreshold,
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunRefresh refreshes every watched product once. A daily-limit error
// from the source stops the run; other per-product errors are logged
// and skipped.
func (e *Engine) RunRefresh(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	ids, err := e.store.ListWatchedProductIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing watched products: %w", err)
	}

	var alerts []notify.AlertPayload
	for i, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		alert, err := e.refreshProduct(ctx, id)
		if err != nil {
			if errors.Is(err, amazon.ErrDailyLimitReached) {
				e.log.Warn("daily upstream limit reached, stopping refresh",
					"product", id,
					"refreshed", i,
				)
				break
			}
			e.log.Error("product refresh failed", "product", id, "error", err)
			metrics.RefreshErrorsTotal.Inc()
			continue
		}

		metrics.RefreshProductsTotal.Inc()
		if alert != nil {
			alerts = append(alerts, *alert)
		}

		// Stagger between products to avoid upstream bursts.
		if i < len(ids)-1 && e.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.staggerOffset):
			}
		}
	}

	e.sendAlerts(ctx, alerts)
	return nil
}

// sendAlerts delivers collected price-drop alerts in one batch.
// Delivery failures are logged, never fatal to the refresh.
func (e *Engine) sendAlerts(ctx context.Context, alerts []notify.AlertPayload) {
	if e.notifier == nil || len(alerts) == 0 {
		return
	}
	if err := e.notifier.SendBatchAlert(ctx, alerts); err != nil {
		e.log.Error("sending price-drop alerts failed", "count", len(alerts), "error", err)
	}
}

// refreshProduct fetches and merges one product. The returned alert is
// non-nil when the price dropped past the notification threshold.
func (e *Engine) refreshProduct(ctx context.Context, id string) (*notify.AlertPayload, error) {
	fresh, err := e.source.Lookup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching %s from %s: %w", id, e.source.Name(), err)
	}

	prev, err := e.store.GetProduct(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		prev = nil
	case err != nil:
		return nil, fmt.Errorf("loading snapshot for %s: %w", id, err)
	}

	next := e.merge(prev, fresh)

	if err := e.store.UpsertProduct(ctx, next); err != nil {
		return nil, fmt.Errorf("persisting snapshot for %s: %w", id, err)
	}
	e.catalog.Upsert(next)

	e.log.Info("product refreshed",
		"product", id,
		"price", next.Price,
		"bsr", next.Rank,
		"history_points", len(next.PriceHistory),
	)
	return e.priceDropAlert(prev, next), nil
}

// priceDropAlert compares the previous and refreshed snapshots and
// builds an alert when the drop reaches the threshold.
func (e *Engine) priceDropAlert(prev, next *domain.Product) *notify.AlertPayload {
	if prev == nil || prev.Price <= 0 || next.Price >= prev.Price {
		return nil
	}

	drop := (prev.Price - next.Price) / prev.Price * 100
	if drop < e.dropThreshold {
		return nil
	}

	alert := &notify.AlertPayload{
		ProductName: next.Name,
		ASIN:        next.ASIN,
		ProductURL:  "https://www.amazon.com/dp/" + next.ASIN,
		ImageURL:    next.Image,
		Category:    next.Category,
		OldPrice:    prev.Price,
		NewPrice:    next.Price,
		DropPercent: drop,
	}
	if next.Analysis != nil {
		alert.Grade = next.Analysis.Grade
		alert.Score = next.Analysis.Score
	}
	return alert
}

// merge carries the previous snapshot's histories and user-entered
// fields forward, updates the live fields from the fresh fetch, and
// appends today's history sample.
func (e *Engine) merge(prev, fresh *domain.Product) *domain.Product {
	next := *fresh

	if prev != nil {
		next.PriceHistory = prev.PriceHistory
		next.RankHistory = prev.RankHistory

		// Assessments and user notes survive refreshes.
		next.Analysis = prev.Analysis
		next.SupplierURL = prev.SupplierURL
		next.TargetROI = prev.TargetROI
		next.Notes = prev.Notes
	}

	today := e.nowFunc().Format(dateLabel)
	next.PriceHistory = appendPricePoint(next.PriceHistory, today, fresh.Price)
	next.RankHistory = appendRankPoint(next.RankHistory, today, fresh.Rank)

	return &next
}

// appendPricePoint adds a sample, replacing a same-day tail entry so a
// rerun within one day does not duplicate points.
func appendPricePoint(history []domain.PricePoint, date string, price float64) []domain.PricePoint {
	if n := len(history); n > 0 && history[n-1].Date == date {
		history[n-1].Price = price
		return history
	}
	history = append(history, domain.PricePoint{Date: date, Price: price})
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	return history
}

func appendRankPoint(history []domain.RankPoint, date string, rank int) []domain.RankPoint {
	if n := len(history); n > 0 && history[n-1].Date == date {
		history[n-1].Rank = rank
		return history
	}
	history = append(history, domain.RankPoint{Date: date, Rank: rank})
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	return history
}
