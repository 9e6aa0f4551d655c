package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viraladmedia/amzpulse/internal/amazon"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/engine"
	"github.com/viraladmedia/amzpulse/internal/notify"
	"github.com/viraladmedia/amzpulse/internal/store"
	"github.com/viraladmedia/amzpulse/pkg/logger"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// stubSource serves canned products and records lookups.
type stubSource struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	errs     map[string]error
	calls    []string
}

func newStubSource() *stubSource {
	return &stubSource{
		products: make(map[string]*domain.Product),
		errs:     make(map[string]error),
	}
}

func (s *stubSource) Lookup(_ context.Context, asin string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, asin)
	if err, ok := s.errs[asin]; ok {
		return nil, err
	}
	p, ok := s.products[asin]
	if !ok {
		return nil, amazon.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) lookups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func watchedProduct(id string, price float64, rank int) *domain.Product {
	return &domain.Product{
		ID:    id,
		ASIN:  id,
		Name:  "Watched " + id,
		Price: price,
		Rank:  rank,
	}
}

func watchProducts(t *testing.T, st store.Store, userID string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := st.AddWatch(context.Background(), userID, id)
		require.NoError(t, err)
	}
}

func newTestUser(t *testing.T, st store.Store) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        "refresh@example.com",
		PasswordHash: "x",
		Plan:         domain.PlanFree,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func newEngine(st store.Store, src amazon.Source, cat *catalog.Catalog, opts ...engine.EngineOption) *engine.Engine {
	base := []engine.EngineOption{
		engine.WithStaggerOffset(0),
		engine.WithLogger(logger.Nop()),
	}
	return engine.New(st, src, cat, append(base, opts...)...)
}

func TestEngine_RunRefresh_AppendsHistory(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)

	seed := watchedProduct("B000WATCH01", 20.00, 900)
	seed.PriceHistory = []domain.PricePoint{{Date: "Mar 1", Price: 19.50}}
	seed.RankHistory = []domain.RankPoint{{Date: "Mar 1", Rank: 1000}}
	seed.Notes = "bought 5 units"
	require.NoError(t, st.UpsertProduct(context.Background(), seed))
	watchProducts(t, st, u.ID, "B000WATCH01")

	src := newStubSource()
	src.products["B000WATCH01"] = watchedProduct("B000WATCH01", 21.25, 850)

	cat := catalog.New()
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	eng := newEngine(st, src, cat, engine.WithNowFunc(func() time.Time { return now }))

	require.NoError(t, eng.RunRefresh(context.Background()))

	got, err := st.GetProduct(context.Background(), "B000WATCH01")
	require.NoError(t, err)

	assert.InDelta(t, 21.25, got.Price, 0.001)
	assert.Equal(t, 850, got.Rank)
	assert.Equal(t, "bought 5 units", got.Notes, "user fields survive the refresh")

	require.Len(t, got.PriceHistory, 2)
	assert.Equal(t, domain.PricePoint{Date: "Mar 2", Price: 21.25}, got.PriceHistory[1])
	require.Len(t, got.RankHistory, 2)
	assert.Equal(t, domain.RankPoint{Date: "Mar 2", Rank: 850}, got.RankHistory[1])

	fromCatalog, ok := cat.Get("B000WATCH01")
	require.True(t, ok, "refreshed product lands in the catalog")
	assert.InDelta(t, 21.25, fromCatalog.Price, 0.001)
}

func TestEngine_RunRefresh_SameDayRerunReplacesTail(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("B000WATCH02", 10, 500)))
	watchProducts(t, st, u.ID, "B000WATCH02")

	src := newStubSource()
	src.products["B000WATCH02"] = watchedProduct("B000WATCH02", 10.00, 500)

	now := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	eng := newEngine(st, src, catalog.New(), engine.WithNowFunc(func() time.Time { return now }))

	require.NoError(t, eng.RunRefresh(context.Background()))

	src.mu.Lock()
	src.products["B000WATCH02"].Price = 11.00
	src.mu.Unlock()

	require.NoError(t, eng.RunRefresh(context.Background()))

	got, err := st.GetProduct(context.Background(), "B000WATCH02")
	require.NoError(t, err)
	require.Len(t, got.PriceHistory, 1, "same-day rerun must not duplicate the sample")
	assert.InDelta(t, 11.00, got.PriceHistory[0].Price, 0.001)
}

func TestEngine_RunRefresh_CapsHistoryWindow(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)

	seed := watchedProduct("B000WATCH03", 15, 700)
	for i := 0; i < 91; i++ {
		date := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("Jan 2")
		seed.PriceHistory = append(seed.PriceHistory, domain.PricePoint{Date: date, Price: 15})
		seed.RankHistory = append(seed.RankHistory, domain.RankPoint{Date: date, Rank: 700})
	}
	require.NoError(t, st.UpsertProduct(context.Background(), seed))
	watchProducts(t, st, u.ID, "B000WATCH03")

	src := newStubSource()
	src.products["B000WATCH03"] = watchedProduct("B000WATCH03", 16, 650)

	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	eng := newEngine(st, src, catalog.New(), engine.WithNowFunc(func() time.Time { return now }))

	require.NoError(t, eng.RunRefresh(context.Background()))

	got, err := st.GetProduct(context.Background(), "B000WATCH03")
	require.NoError(t, err)
	require.Len(t, got.PriceHistory, 91, "window stays at 91 points")
	assert.Equal(t, "Mar 2", got.PriceHistory[90].Date)
	assert.Equal(t, "Dec 2", got.PriceHistory[0].Date, "oldest sample is dropped")
	require.Len(t, got.RankHistory, 91)
}

func TestEngine_RunRefresh_SkipsFailedProduct(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("A000FAIL", 5, 100)))
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("B000GOOD", 5, 100)))
	watchProducts(t, st, u.ID, "A000FAIL", "B000GOOD")

	src := newStubSource()
	src.errs["A000FAIL"] = errors.New("boom")
	src.products["B000GOOD"] = watchedProduct("B000GOOD", 6, 90)

	eng := newEngine(st, src, catalog.New())

	require.NoError(t, eng.RunRefresh(context.Background()))

	got, err := st.GetProduct(context.Background(), "B000GOOD")
	require.NoError(t, err)
	assert.InDelta(t, 6, got.Price, 0.001, "later products still refresh after a failure")
}

func TestEngine_RunRefresh_StopsOnDailyLimit(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("A000FIRST", 5, 100)))
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("B000SECOND", 5, 100)))
	watchProducts(t, st, u.ID, "A000FIRST", "B000SECOND")

	src := newStubSource()
	src.errs["A000FIRST"] = amazon.ErrDailyLimitReached

	eng := newEngine(st, src, catalog.New())

	require.NoError(t, eng.RunRefresh(context.Background()))

	assert.Equal(t, []string{"A000FIRST"}, src.lookups(), "run stops at the daily limit")
}

func TestEngine_RunRefresh_NoWatches(t *testing.T) {
	t.Parallel()

	src := newStubSource()
	eng := newEngine(store.NewMemoryStore(), src, catalog.New())

	require.NoError(t, eng.RunRefresh(context.Background()))
	assert.Empty(t, src.lookups())
}

// stubNotifier records alert batches.
type stubNotifier struct {
	mu      sync.Mutex
	batches [][]notify.AlertPayload
}

func (n *stubNotifier) SendAlert(_ context.Context, alert *notify.AlertPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, []notify.AlertPayload{*alert})
	return nil
}

func (n *stubNotifier) SendBatchAlert(_ context.Context, alerts []notify.AlertPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, append([]notify.AlertPayload(nil), alerts...))
	return nil
}

func (n *stubNotifier) sent() [][]notify.AlertPayload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.batches
}

func TestEngine_RunRefresh_SendsPriceDropAlert(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)

	seed := watchedProduct("B000DROP01", 100.00, 900)
	seed.Category = "Electronics"
	require.NoError(t, st.UpsertProduct(context.Background(), seed))
	watchProducts(t, st, u.ID, "B000DROP01")

	src := newStubSource()
	src.products["B000DROP01"] = watchedProduct("B000DROP01", 80.00, 850)

	notifier := &stubNotifier{}
	eng := newEngine(st, src, catalog.New(),
		engine.WithNotifier(notifier),
		engine.WithDropThreshold(10),
	)

	require.NoError(t, eng.RunRefresh(context.Background()))

	batches := notifier.sent()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)

	alert := batches[0][0]
	assert.Equal(t, "B000DROP01", alert.ASIN)
	assert.InDelta(t, 100.00, alert.OldPrice, 0.001)
	assert.InDelta(t, 80.00, alert.NewPrice, 0.001)
	assert.InDelta(t, 20.0, alert.DropPercent, 0.001)
}

func TestEngine_RunRefresh_SmallDropIsSilent(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("B000DROP02", 100.00, 900)))
	watchProducts(t, st, u.ID, "B000DROP02")

	src := newStubSource()
	src.products["B000DROP02"] = watchedProduct("B000DROP02", 95.00, 900)

	notifier := &stubNotifier{}
	eng := newEngine(st, src, catalog.New(),
		engine.WithNotifier(notifier),
		engine.WithDropThreshold(10),
	)

	require.NoError(t, eng.RunRefresh(context.Background()))
	assert.Empty(t, notifier.sent(), "a 5% drop stays below the threshold")
}

func TestEngine_RunRefresh_PriceRiseIsSilent(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	u := newTestUser(t, st)
	require.NoError(t, st.UpsertProduct(context.Background(), watchedProduct("B000RISE01", 100.00, 900)))
	watchProducts(t, st, u.ID, "B000RISE01")

	src := newStubSource()
	src.products["B000RISE01"] = watchedProduct("B000RISE01", 130.00, 900)

	notifier := &stubNotifier{}
	eng := newEngine(st, src, catalog.New(), engine.WithNotifier(notifier))

	require.NoError(t, eng.RunRefresh(context.Background()))
	assert.Empty(t, notifier.sent())
}

func TestScheduler_RegistersRefreshJob(t *testing.T) {
	t.Parallel()

	eng := newEngine(store.NewMemoryStore(), newStubSource(), catalog.New())

	s, err := engine.NewScheduler(eng, 6*time.Hour, logger.Nop())
	require.NoError(t, err)

	assert.Len(t, s.Entries(), 1)

	s.Start()
	<-s.Stop().Done()
}
