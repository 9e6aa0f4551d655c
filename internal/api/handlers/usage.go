package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// UsageHandler reports a user's metered activity over the last day.
type UsageHandler struct {
	store      store.Store
	dailyLimit int
	log        *slog.Logger
}

// NewUsageHandler creates a new UsageHandler. dailyLimit is the free
// plan's daily assessment quota.
func NewUsageHandler(s store.Store, dailyLimit int, log *slog.Logger) *UsageHandler {
	return &UsageHandler{store: s, dailyLimit: dailyLimit, log: log}
}

// Summary returns the rolling 24-hour usage counts and remaining
// assessment quota.
func (h *UsageHandler) Summary(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	since := time.Now().Add(-24 * time.Hour)
	counts, err := h.store.CountUsageSince(c.Request().Context(), claims.UserID, since)
	if err != nil {
		h.log.Error("counting usage failed", "user", claims.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "usage unavailable"})
	}

	usage := domain.Usage{
		Lookups:     counts[domain.UsageLookup],
		Assessments: counts[domain.UsageAssessment],
		BatchRuns:   counts[domain.UsageBatch],
		DailyLimit:  h.dailyLimit,
		Unlimited:   claims.Plan == domain.PlanPro,
	}
	if !usage.Unlimited {
		usage.Remaining = h.dailyLimit - usage.Assessments
		if usage.Remaining < 0 {
			usage.Remaining = 0
		}
	}

	return c.JSON(http.StatusOK, usage)
}
