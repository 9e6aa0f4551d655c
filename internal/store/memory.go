package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// MemoryStore implements Store entirely in memory. It backs mock mode,
// where the service runs without PostgreSQL, and handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*domain.User      // id -> user
	emails   map[string]string            // email -> id
	watches  map[string][]domain.WatchItem // user id -> items
	events   []domain.UsageEvent
	products map[string]*domain.Product // id -> snapshot
	updated  map[string]time.Time       // id -> last upsert
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*domain.User),
		emails:   make(map[string]string),
		watches:  make(map[string][]domain.WatchItem),
		products: make(map[string]*domain.Product),
		updated:  make(map[string]time.Time),
	}
}

// Ping always succeeds.
func (*MemoryStore) Ping(context.Context) error { return nil }

// Migrate is a no-op, there is no schema.
func (*MemoryStore) Migrate(context.Context) error { return nil }

// CreateUser registers a user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[u.Email]; taken {
		return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
	}

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	cp := *u
	s.users[u.ID] = &cp
	s.emails[u.Email] = u.ID
	return nil
}

// GetUserByEmail retrieves a user by email address.
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

// GetUserByID retrieves a user by id.
func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// UpdateUserPlan changes a user's billing plan.
func (s *MemoryStore) UpdateUserPlan(_ context.Context, id string, plan domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Plan = plan
	return nil
}

// AddWatch saves a product to a user's watchlist, idempotently.
func (s *MemoryStore) AddWatch(_ context.Context, userID, productID string) (*domain.WatchItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.watches[userID] {
		if w.ProductID == productID {
			cp := w
			return &cp, nil
		}
	}

	w := domain.WatchItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	s.watches[userID] = append(s.watches[userID], w)
	return &w, nil
}

// RemoveWatch deletes a product from a user's watchlist.
func (s *MemoryStore) RemoveWatch(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.watches[userID]
	for i, w := range items {
		if w.ProductID == productID {
			s.watches[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListWatches returns a user's watchlist, most recently saved first.
func (s *MemoryStore) ListWatches(_ context.Context, userID string) ([]domain.WatchItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.WatchItem, len(s.watches[userID]))
	copy(items, s.watches[userID])
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListWatchedProductIDs returns every product id on any watchlist.
func (s *MemoryStore) ListWatchedProductIDs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, items := range s.watches {
		for _, w := range items {
			seen[w.ProductID] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// InsertUsageEvent records one metered action.
func (s *MemoryStore) InsertUsageEvent(_ context.Context, e *domain.UsageEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, *e)
	return nil
}

// CountUsageSince returns per-kind event counts for a user since the
// given time.
func (s *MemoryStore) CountUsageSince(_ context.Context, userID string, since time.Time) (UsageCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := UsageCounts{}
	for _, e := range s.events {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			counts[e.Kind]++
		}
	}
	return counts, nil
}

// UpsertProduct saves a product snapshot keyed by product id. The
// snapshot is deep-copied in, so later mutation of the caller's
// histories never reaches the stored copy.
func (s *MemoryStore) UpsertProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[p.ID] = p.Clone()
	s.updated[p.ID] = time.Now().UTC()
	return nil
}

// GetProduct retrieves a product snapshot by id. The returned copy is
// the caller's to mutate.
func (s *MemoryStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// ListProducts returns all product snapshots, most recently updated
// first.
func (s *MemoryStore) ListProducts(context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p.Clone())
	}
	sort.Slice(products, func(i, j int) bool {
		return s.updated[products[i].ID].After(s.updated[products[j].ID])
	})
	return products, nil
}
