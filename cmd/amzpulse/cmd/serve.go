package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/viraladmedia/amzpulse/internal/amazon"
	"github.com/viraladmedia/amzpulse/internal/api"
	"github.com/viraladmedia/amzpulse/internal/auth"
	"github.com/viraladmedia/amzpulse/internal/cache"
	"github.com/viraladmedia/amzpulse/internal/catalog"
	"github.com/viraladmedia/amzpulse/internal/config"
	"github.com/viraladmedia/amzpulse/internal/engine"
	"github.com/viraladmedia/amzpulse/internal/notify"
	"github.com/viraladmedia/amzpulse/internal/store"
	"github.com/viraladmedia/amzpulse/pkg/assess"
	"github.com/viraladmedia/amzpulse/pkg/logger"
	"github.com/viraladmedia/amzpulse/pkg/normalize"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and refresh scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	productCache, err := buildCache(cfg)
	if err != nil {
		return err
	}
	defer productCache.Close()

	source := buildSource(cfg)
	log.Info("upstream source configured", "mode", source.Name())

	cat, err := buildCatalog(st, log)
	if err != nil {
		return err
	}

	manager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	assessor := buildAssessor(cfg, log)
	notifier := buildNotifier(cfg, log)

	eng := engine.New(st, source, cat,
		engine.WithLogger(log),
		engine.WithStaggerOffset(cfg.Schedule.StaggerOffset),
		engine.WithNotifier(notifier),
		engine.WithDropThreshold(cfg.Notify.DropPercent),
	)
	scheduler, err := engine.NewScheduler(eng, cfg.Schedule.RefreshInterval, log)
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}
	scheduler.Start()

	e := api.NewServer(api.Deps{
		Store:          st,
		Catalog:        cat,
		Source:         source,
		Cache:          productCache,
		Assessor:       assessor,
		Auth:           manager,
		FreeDailyLimit: cfg.Plans.FreeDailyLimit,
		Log:            log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	<-scheduler.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildSource selects the upstream product source. Every mode shares
// one rate limiter so bursts and the daily quota apply uniformly.
func buildSource(cfg *config.Config) amazon.Source {
	rl := amazon.NewRateLimiter(
		cfg.Source.RateLimit.PerSecond,
		cfg.Source.RateLimit.Burst,
		cfg.Source.RateLimit.DailyLimit,
	)

	switch cfg.Source.Mode {
	case "api":
		return amazon.NewAPIClient(cfg.Source.BaseURL, cfg.Source.APIKey,
			amazon.WithAPIRateLimiter(rl),
		)
	case "scrape":
		return amazon.NewScrapeClient(amazon.WithScrapeRateLimiter(rl))
	default:
		return amazon.NewMockSource()
	}
}

func buildCache(cfg *config.Config) (cache.Cache, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemory(cfg.Redis.TTL), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r, err := cache.NewRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB,
		cache.WithTTL(cfg.Redis.TTL),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return r, nil
}

// buildCatalog starts from the deterministic demo products and overlays
// everything already persisted, so restarts keep live data.
func buildCatalog(st store.Store, log *slog.Logger) (*catalog.Catalog, error) {
	cat := catalog.New(normalize.SeedProducts()...)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	persisted, err := st.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading persisted products: %w", err)
	}
	for _, p := range persisted {
		cat.Upsert(p)
	}

	log.Info("catalog loaded", "products", len(cat.List()), "persisted", len(persisted))
	return cat, nil
}

func buildAssessor(cfg *config.Config, log *slog.Logger) assess.Assessor {
	var backend assess.LLMBackend
	switch cfg.LLM.Backend {
	case "anthropic":
		backend = assess.NewAnthropicBackend(
			assess.WithAnthropicModel(cfg.LLM.Anthropic.Model),
		)
	default:
		backend = assess.NewGeminiBackend(
			assess.WithGeminiModel(cfg.LLM.Gemini.Model),
		)
	}
	log.Info("assessment backend configured", "backend", backend.Name())

	return assess.NewAnalyzer(backend,
		assess.WithTemperature(cfg.LLM.Temperature),
		assess.WithMaxTokens(cfg.LLM.MaxTokens),
		assess.WithTimeout(cfg.LLM.Timeout),
		assess.WithLogger(log),
	)
}

func buildNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notify.DiscordWebhookURL == "" {
		return nil
	}
	log.Info("price-drop alerts enabled", "channel", "discord")
	return notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)
}
