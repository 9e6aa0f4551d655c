// Package auth implements password hashing and stateless session
// tokens for the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

const issuer = "amzpulse"

// ErrInvalidToken is returned for tokens that fail verification for
// any reason, including expiry.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidCredentials is returned when a password check fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims is the session token payload.
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Plan   domain.Plan `json:"plan"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens and hashes passwords.
type Manager struct {
	secret []byte
	ttl    time.Duration
	cost   int
}

// NewManager creates a Manager. ttl bounds token lifetime and cost is
// the bcrypt work factor.
func NewManager(secret string, ttl time.Duration, cost int) *Manager {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		cost:   cost,
	}
}

// HashPassword hashes a plaintext password for storage.
func (m *Manager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
func (m *Manager) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs a session token for the user and returns it with
// its expiry time.
func (m *Manager) IssueToken(u *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Plan:   u.Plan,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies a session token and returns its claims.
func (m *Manager) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
