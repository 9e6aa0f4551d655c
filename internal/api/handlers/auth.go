package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// AuthHandler implements registration, login, and session inspection.
type AuthHandler struct {
	store store.Store
	auth  *auth.Manager
	log   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s store.Store, m *auth.Manager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{store: s, auth: m, log: log}
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

// Register creates an account and returns a session token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "a valid email is required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password must be at least 8 characters"})
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("hashing password failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "registration failed"})
	}

	u := &domain.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Plan:         domain.PlanFree,
		Role:         "user",
	}
	if err := h.store.CreateUser(c.Request().Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
		}
		h.log.Error("creating user failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "registration failed"})
	}

	return h.session(c, http.StatusCreated, u)
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.store.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		}
		h.log.Error("loading user failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	}

	if err := h.auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
	}

	return h.session(c, http.StatusOK, u)
}

// Me returns the account behind the current session token.
func (h *AuthHandler) Me(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	u, err := h.store.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "account no longer exists"})
		}
		h.log.Error("loading user failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "lookup failed"})
	}

	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) session(c echo.Context, status int, u *domain.User) error {
	token, expiresAt, err := h.auth.IssueToken(u)
	if err != nil {
		h.log.Error("issuing token failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session failed"})
	}

	return c.JSON(status, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *u,
	})
}
