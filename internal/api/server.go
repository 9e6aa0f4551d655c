// Package api assembles the HTTP server: Echo routing, Huma-described
// product endpoints, and the shared middleware chain.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viraladmedia/amzpulse/api/openapi"
	"github.com/viraladmedia/amzpulse/internal/amazon"
	"github.com/viraladmedia/amzpulse/internal/api/handlers"
	"github.com/viraladmedia/amzpulse/internal/api/middleware"
	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/cache"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/store"
	"github.com/viraladmedia/amzpulse/pkg/assess"
)

const apiVersion = "1.0.0"

// Deps are the wired dependencies the server routes requests to.
type Deps struct {
	Store          store.Store
	Catalog        *catalog.Catalog
	Source         amazon.Source
	Cache          cache.Cache
	Assessor       assess.Assessor
	Auth           *auth.Manager
	FreeDailyLimit int
	Log            *slog.Logger
}

// NewServer builds the Echo instance with all routes registered.
func NewServer(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(d.Log))
	e.Use(middleware.RequestLog(d.Log))
	e.Use(middleware.Metrics())

	// Operational endpoints.
	health := handlers.NewHealthHandler(d.Store)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Session endpoints.
	authHandler := handlers.NewAuthHandler(d.Store, d.Auth, d.Log)
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, d.Auth.Middleware())

	watchlist := handlers.NewWatchlistHandler(d.Store, d.Catalog, d.Log)
	wl := e.Group("/api/watchlist", d.Auth.Middleware())
	wl.GET("", watchlist.List)
	wl.POST("", watchlist.Add)
	wl.DELETE("/:idOrAsin", watchlist.Remove)

	usage := handlers.NewUsageHandler(d.Store, d.FreeDailyLimit, d.Log)
	e.GET("/api/billing/usage", usage.Summary, d.Auth.Middleware())

	// Product endpoints, described via Huma for schema validation and
	// the OpenAPI document at /openapi.json.
	humaAPI := humaecho.New(e, huma.DefaultConfig("AmzPulse API", apiVersion))

	handlers.RegisterProductRoutes(humaAPI, handlers.NewProductsHandler(
		d.Catalog, d.Store, d.Source, d.Cache, d.Auth, d.Log,
	))
	handlers.RegisterAnalyzeRoutes(humaAPI, handlers.NewAnalyzeHandler(
		d.Catalog, d.Store, d.Assessor, d.Auth, d.FreeDailyLimit, d.Log,
	))
	handlers.RegisterBatchRoutes(humaAPI, handlers.NewBatchHandler(
		d.Catalog, d.Store, d.Source, d.Cache, d.Auth, d.Log,
	))
	handlers.RegisterCategoryRoutes(humaAPI, handlers.NewCategoriesHandler())
	handlers.RegisterScoreRoutes(humaAPI, handlers.NewScoreHandler(d.Catalog))

	openapi.RegisterRoutes(e)

	return e
}
