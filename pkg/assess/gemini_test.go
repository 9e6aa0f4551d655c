package assess_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/viraladmedia/amzpulse/pkg/assess"
)

func TestGeminiBackend_Name(t *testing.T) {
	t.Parallel()
	b := assess.NewGeminiBackend()
	assert.Equal(t, "gemini", b.Name())
}

func TestGeminiBackend_Generate(t *testing.T) {
	t.Parallel()

	successResponse := `{
		"candidates": [{"content": {"parts": [{"text": "{\"grade\":\"B\"}"}]}}],
		"modelVersion": "gemini-2.5-flash",
		"usageMetadata": {"promptTokenCount": 120, "candidatesTokenCount": 80, "totalTokenCount": 200}
	}`

	tests := []struct {
		name       string
		apiKey     string
		handler    http.HandlerFunc
		req        assess.GenerateRequest
		wantErr    bool
		wantErrMsg string
		wantResp   string
		wantUsage  int
	}{
		{
			name:   "successful generation",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
				assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(successResponse))
			},
			req: assess.GenerateRequest{
				Prompt:      "analyze this",
				Temperature: 0.2,
				MaxTokens:   1024,
			},
			wantResp:  `{"grade":"B"}`,
			wantUsage: 200,
		},
		{
			name:   "json mode sends schema",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Equal(t, "application/json",
					gjson.GetBytes(body, "generationConfig.responseMimeType").String())
				assert.Equal(t, "OBJECT",
					gjson.GetBytes(body, "generationConfig.responseSchema.type").String())
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(successResponse))
			},
			req: assess.GenerateRequest{
				Prompt: "analyze this",
				Format: assess.FormatJSON,
				Schema: assess.AnalysisSchema(),
			},
			wantResp: `{"grade":"B"}`,
		},
		{
			name:       "missing API key",
			apiKey:     "",
			handler:    func(_ http.ResponseWriter, _ *http.Request) {},
			req:        assess.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "GEMINI_API_KEY",
		},
		{
			name:   "quota exhausted 429",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded"}}`))
			},
			req:        assess.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "quota exceeded",
		},
		{
			name:   "no candidates",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"candidates": []}`))
			},
			req:        assess.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			backend := assess.NewGeminiBackend(
				assess.WithGeminiBaseURL(srv.URL),
				assess.WithGeminiHTTPClient(srv.Client()),
				assess.WithGeminiAPIKey(tt.apiKey),
			)

			resp, err := backend.Generate(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantResp, resp.Content)
			if tt.wantUsage > 0 {
				assert.Equal(t, tt.wantUsage, resp.Usage.TotalTokens)
			}
		})
	}
}

func TestGeminiBackend_SystemInstruction(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "be terse",
			gjson.GetBytes(body, "systemInstruction.parts.0.text").String())
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	backend := assess.NewGeminiBackend(
		assess.WithGeminiBaseURL(srv.URL),
		assess.WithGeminiHTTPClient(srv.Client()),
		assess.WithGeminiAPIKey("test-key"),
	)

	resp, err := backend.Generate(context.Background(), assess.GenerateRequest{
		Prompt:    "hello",
		SystemMsg: "be terse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
}
