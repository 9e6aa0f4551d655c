package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func loadTestFixture(t *testing.T) map[string]json.RawMessage {
	t.Helper()
	byASIN, err := loadFixture(filepath.Join("testdata", "products.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return byASIN
}

func TestLoadFixture(t *testing.T) {
	byASIN := loadTestFixture(t)
	if len(byASIN) == 0 {
		t.Fatal("expected products in fixture")
	}
	if _, ok := byASIN["B0MOCKAUDIO"]; !ok {
		t.Error("expected B0MOCKAUDIO in fixture index")
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	if _, err := loadFixture(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestProductHandler_Hit(t *testing.T) {
	handler := productHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/products/B0MOCKAUDIO", http.NoBody)
	req.SetPathValue("asin", "B0MOCKAUDIO")
	req.Header.Set("X-Api-Key", "local-dev")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["asin"] != "B0MOCKAUDIO" {
		t.Errorf("asin=%v, want B0MOCKAUDIO", resp["asin"])
	}
	// Alias field names are served untouched for the normalizer to resolve.
	if resp["bsr"] == nil {
		t.Error("expected raw bsr field in payload")
	}
	if resp["estSales"] == nil {
		t.Error("expected raw estSales field in payload")
	}
}

func TestProductHandler_CaseInsensitiveASIN(t *testing.T) {
	handler := productHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/products/b0mockserum", http.NoBody)
	req.SetPathValue("asin", "b0mockserum")
	req.Header.Set("X-Api-Key", "local-dev")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
}

func TestProductHandler_NotFound(t *testing.T) {
	handler := productHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/products/B0NOSUCH", http.NoBody)
	req.SetPathValue("asin", "B0NOSUCH")
	req.Header.Set("X-Api-Key", "local-dev")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestProductHandler_MissingAPIKey(t *testing.T) {
	handler := productHandler(testLogger(), loadTestFixture(t))
	req := httptest.NewRequest(http.MethodGet, "/products/B0MOCKAUDIO", http.NoBody)
	req.SetPathValue("asin", "B0MOCKAUDIO")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "missing api key" {
		t.Errorf("error=%s, want missing api key", resp["error"])
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
