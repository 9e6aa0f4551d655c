package handlers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/store"
	"github.com/viraladmedia/amzpulse/pkg/logger"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

const testSecret = "handler-test-secret-32-bytes-min!"

func testManager() *auth.Manager {
	return auth.NewManager(testSecret, time.Hour, 4)
}

func createUser(t *testing.T, st store.Store, email string, plan domain.Plan) *domain.User {
	t.Helper()

	m := testManager()
	hash, err := m.HashPassword("correct-horse")
	require.NoError(t, err)

	u := &domain.User{
		Email:        email,
		Name:         "Test Seller",
		PasswordHash: hash,
		Plan:         plan,
		Role:         "user",
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func bearerFor(t *testing.T, u *domain.User) string {
	t.Helper()
	token, _, err := testManager().IssueToken(u)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func catalogProduct(id, name, category string, price float64) *domain.Product {
	return &domain.Product{
		ID:             id,
		ASIN:           id,
		Name:           name,
		Brand:          "TestBrand",
		Category:       category,
		Price:          price,
		Rank:           1500,
		EstimatedSales: 200,
		Rating:         4.4,
		ReferralFee:    price * 0.15,
		FulfillmentFee: 3.40,
		StorageFee:     0.50,
		Sellers:        3,
	}
}

// stubLookupSource serves canned products keyed by ASIN and fails for
// anything else.
type stubLookupSource struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	errs     map[string]error
	calls    int
}

func newStubLookupSource() *stubLookupSource {
	return &stubLookupSource{
		products: make(map[string]*domain.Product),
		errs:     make(map[string]error),
	}
}

func (s *stubLookupSource) Lookup(_ context.Context, asin string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err, ok := s.errs[asin]; ok {
		return nil, err
	}
	if p, ok := s.products[asin]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errUpstreamDown
}

func (s *stubLookupSource) Name() string { return "stub" }

func (s *stubLookupSource) lookupCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var errUpstreamDown = errNotServed("upstream down")

type errNotServed string

func (e errNotServed) Error() string { return string(e) }

var nopLog = logger.Nop()

// timeZero counts usage over all time.
func timeZero() time.Time { return time.Time{} }
