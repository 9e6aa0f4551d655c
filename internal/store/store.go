// Package store defines the datastore abstraction for amzpulse.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running
// database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated,
// such as registering an email twice.
var ErrDuplicate = errors.New("already exists")

// UsageCounts holds per-kind event counts for a metering window.
type UsageCounts map[string]int

// Total sums all counted events.
func (u UsageCounts) Total() int {
	n := 0
	for _, c := range u {
		n += c
	}
	return n
}

// Store defines all data access operations for amzpulse.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUserPlan(ctx context.Context, id string, plan domain.Plan) error

	// Watchlist
	AddWatch(ctx context.Context, userID, productID string) (*domain.WatchItem, error)
	RemoveWatch(ctx context.Context, userID, productID string) error
	ListWatches(ctx context.Context, userID string) ([]domain.WatchItem, error)
	ListWatchedProductIDs(ctx context.Context) ([]string, error)

	// Usage metering
	InsertUsageEvent(ctx context.Context, e *domain.UsageEvent) error
	CountUsageSince(ctx context.Context, userID string, since time.Time) (UsageCounts, error)

	// Product snapshots, keeping lookups warm across restarts
	UpsertProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
