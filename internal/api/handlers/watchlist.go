package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/store"
	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// WatchlistHandler implements the per-user watchlist endpoints. All of
// them sit behind the auth middleware.
type WatchlistHandler struct {
	store   store.Store
	catalog *catalog.Catalog
	log     *slog.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(s store.Store, cat *catalog.Catalog, log *slog.Logger) *WatchlistHandler {
	return &WatchlistHandler{store: s, catalog: cat, log: log}
}

// WatchRequest is the body for POST /api/watchlist. The product may be
// named by catalog id or by ASIN; either key works.
type WatchRequest struct {
	ProductID string `json:"productId"`
	ASIN      string `json:"asin"`
}

// WatchItemResponse wraps the saved item for POST /api/watchlist.
type WatchItemResponse struct {
	Item domain.WatchItem `json:"watchlistItem"`
}

// WatchlistResponse is the body for GET /api/watchlist.
type WatchlistResponse struct {
	Items    []domain.WatchItem `json:"items"`
	Products []*domain.Product  `json:"products"`
}

// List returns the user's saved items with any catalog products they
// resolve to.
func (h *WatchlistHandler) List(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	items, err := h.store.ListWatches(c.Request().Context(), claims.UserID)
	if err != nil {
		h.log.Error("listing watchlist failed", "user", claims.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "watchlist unavailable"})
	}

	resp := WatchlistResponse{
		Items:    items,
		Products: make([]*domain.Product, 0, len(items)),
	}
	for _, item := range items {
		if p, ok := h.catalog.Get(item.ProductID); ok {
			resp.Products = append(resp.Products, p)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Add saves a product to the user's watchlist. Re-adding an already
// saved product returns the existing item.
func (h *WatchlistHandler) Add(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	var req WatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		productID = strings.TrimSpace(req.ASIN)
	}
	if productID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "productId or asin is required"})
	}
	productID = h.resolveProductID(productID)

	item, err := h.store.AddWatch(c.Request().Context(), claims.UserID, productID)
	if err != nil {
		h.log.Error("adding watch failed", "user", claims.UserID, "product", productID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save product"})
	}

	return c.JSON(http.StatusCreated, WatchItemResponse{Item: *item})
}

// Remove deletes a product from the user's watchlist by product id or
// ASIN.
func (h *WatchlistHandler) Remove(c echo.Context) error {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	productID := h.resolveProductID(c.Param("idOrAsin"))

	if err := h.store.RemoveWatch(c.Request().Context(), claims.UserID, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not on the watchlist"})
		}
		h.log.Error("removing watch failed", "user", claims.UserID, "product", productID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not remove product"})
	}

	return c.NoContent(http.StatusNoContent)
}

// resolveProductID maps an ASIN to its catalog product id when the
// product is known; otherwise the identifier passes through untouched.
func (h *WatchlistHandler) resolveProductID(idOrAsin string) string {
	if p, ok := h.catalog.GetByASIN(idOrAsin); ok {
		return p.ID
	}
	return idOrAsin
}
