// Package main implements a mock product-data API server for local
// development. It serves canned product payloads from a JSON fixture to
// simulate the upstream marketplace data API without real credentials,
// so `source.mode: api` can be exercised end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

type productFixture struct {
	Products []json.RawMessage `json:"products"`
}

type productStub struct {
	ASIN string `json:"asin"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/products.json", "path to product fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	byASIN, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(byASIN))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{asin}", productHandler(logger, byASIN))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock product server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadFixture reads the fixture and indexes its raw payloads by
// upper-cased ASIN. Payloads are served verbatim, so the fixture can
// carry the loose alias field names real feeds use (estSales, bsr).
func loadFixture(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fixture productFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	byASIN := make(map[string]json.RawMessage, len(fixture.Products))
	for _, raw := range fixture.Products {
		var stub productStub
		if err := json.Unmarshal(raw, &stub); err != nil {
			return nil, fmt.Errorf("parsing fixture product: %w", err)
		}
		if stub.ASIN == "" {
			return nil, fmt.Errorf("fixture product missing asin: %s", string(raw))
		}
		byASIN[strings.ToUpper(stub.ASIN)] = raw
	}
	return byASIN, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func productHandler(logger *slog.Logger, byASIN map[string]json.RawMessage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate an API key header is present (don't verify the value).
		if r.Header.Get("X-Api-Key") == "" {
			logger.Warn("request missing X-Api-Key header")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error": "missing api key",
			})
			return
		}

		asin := strings.ToUpper(r.PathValue("asin"))
		raw, ok := byASIN[asin]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error": "product not found",
			})
			logger.Info("lookup miss", "asin", asin)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write(raw)
		logger.Info("lookup hit", "asin", asin)
	}
}
