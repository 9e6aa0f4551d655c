package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

const defaultPoolSize = 10

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresStore implements Store using pgxpool (connection-pooled
// PostgreSQL). Its methods require a live database and are covered by
// integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateUser inserts a new user and fills in its generated id and
// creation time.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	args := pgx.NamedArgs{
		"email":         u.Email,
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"plan":          string(u.Plan),
		"role":          u.Role,
	}

	err := s.pool.QueryRow(ctx, queryCreateUser, args).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email address.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, queryGetUserByEmail, email)
}

// GetUserByID retrieves a user by its id.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, queryGetUserByID, id)
}

func (s *PostgresStore) getUser(ctx context.Context, query, arg string) (*domain.User, error) {
	u := &domain.User{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Plan, &u.Role, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// UpdateUserPlan changes a user's billing plan.
func (s *PostgresStore) UpdateUserPlan(ctx context.Context, id string, plan domain.Plan) error {
	tag, err := s.pool.Exec(ctx, queryUpdateUserPlan, pgx.NamedArgs{
		"id":   id,
		"plan": string(plan),
	})
	if err != nil {
		return fmt.Errorf("updating user plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddWatch saves a product to a user's watchlist. Adding an already
// watched product returns the existing item.
func (s *PostgresStore) AddWatch(ctx context.Context, userID, productID string) (*domain.WatchItem, error) {
	w := &domain.WatchItem{UserID: userID, ProductID: productID}
	args := pgx.NamedArgs{
		"user_id":    userID,
		"product_id": productID,
	}

	err := s.pool.QueryRow(ctx, queryAddWatch, args).Scan(&w.ID, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict path: the item already exists, return it as-is.
		err = s.pool.QueryRow(ctx, queryGetWatch, userID, productID).Scan(&w.ID, &w.CreatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("adding watch: %w", err)
	}
	return w, nil
}

// RemoveWatch deletes a product from a user's watchlist.
func (s *PostgresStore) RemoveWatch(ctx context.Context, userID, productID string) error {
	tag, err := s.pool.Exec(ctx, queryRemoveWatch, pgx.NamedArgs{
		"user_id":    userID,
		"product_id": productID,
	})
	if err != nil {
		return fmt.Errorf("removing watch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWatches returns a user's watchlist, most recently saved first.
func (s *PostgresStore) ListWatches(ctx context.Context, userID string) ([]domain.WatchItem, error) {
	rows, err := s.pool.Query(ctx, queryListWatches, userID)
	if err != nil {
		return nil, fmt.Errorf("querying watches: %w", err)
	}
	defer rows.Close()

	var items []domain.WatchItem
	for rows.Next() {
		var w domain.WatchItem
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProductID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning watch: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating watches: %w", err)
	}
	return items, nil
}

// ListWatchedProductIDs returns every product id present on any
// watchlist, used by the background refresh job.
func (s *PostgresStore) ListWatchedProductIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, queryListWatchedProductIDs)
	if err != nil {
		return nil, fmt.Errorf("querying watched product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning product id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product ids: %w", err)
	}
	return ids, nil
}

// InsertUsageEvent records one metered action.
func (s *PostgresStore) InsertUsageEvent(ctx context.Context, e *domain.UsageEvent) error {
	args := pgx.NamedArgs{
		"user_id": e.UserID,
		"kind":    e.Kind,
		"asin":    e.ASIN,
	}
	if err := s.pool.QueryRow(ctx, queryInsertUsageEvent, args).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("inserting usage event: %w", err)
	}
	return nil
}

// CountUsageSince returns per-kind event counts for a user since the
// given time.
func (s *PostgresStore) CountUsageSince(ctx context.Context, userID string, since time.Time) (UsageCounts, error) {
	rows, err := s.pool.Query(ctx, queryCountUsageSince, userID, since)
	if err != nil {
		return nil, fmt.Errorf("querying usage counts: %w", err)
	}
	defer rows.Close()

	counts := UsageCounts{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning usage count: %w", err)
		}
		counts[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage counts: %w", err)
	}
	return counts, nil
}

// UpsertProduct saves a product snapshot keyed by product id.
func (s *PostgresStore) UpsertProduct(ctx context.Context, p *domain.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling product: %w", err)
	}

	_, err = s.pool.Exec(ctx, queryUpsertProduct, pgx.NamedArgs{
		"id":   p.ID,
		"asin": p.ASIN,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("upserting product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product snapshot by id.
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, queryGetProduct, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	p := &domain.Product{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("unmarshaling product: %w", err)
	}
	return p, nil
}

// ListProducts returns all product snapshots, most recently updated
// first.
func (s *PostgresStore) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	rows, err := s.pool.Query(ctx, queryListProducts)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p := &domain.Product{}
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("unmarshaling product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
