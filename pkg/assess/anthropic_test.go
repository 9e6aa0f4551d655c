package assess_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viraladmedia/amzpulse/pkg/assess"
)

func TestAnthropicBackend_Name(t *testing.T) {
	t.Parallel()
	b := assess.NewAnthropicBackend()
	assert.Equal(t, "anthropic", b.Name())
}

func TestAnthropicBackend_Generate(t *testing.T) {
	t.Parallel()

	successResponse := `{
		"content": [{"type": "text", "text": "{\"grade\":\"A\"}"}],
		"model": "claude-3-5-haiku-20241022",
		"usage": {"input_tokens": 100, "output_tokens": 40}
	}`

	tests := []struct {
		name       string
		apiKey     string
		handler    http.HandlerFunc
		wantErr    bool
		wantErrMsg string
		wantResp   string
		wantUsage  int
	}{
		{
			name:   "successful generation",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
				assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(successResponse))
			},
			wantResp:  `{"grade":"A"}`,
			wantUsage: 140,
		},
		{
			name:       "missing API key",
			apiKey:     "",
			handler:    func(_ http.ResponseWriter, _ *http.Request) {},
			wantErr:    true,
			wantErrMsg: "ANTHROPIC_API_KEY",
		},
		{
			name:   "rate limited 429",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "rate limit exceeded"}}`))
			},
			wantErr:    true,
			wantErrMsg: "rate_limit_error",
		},
		{
			name:   "empty content array",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"content":[],"model":"test","usage":{}}`))
			},
			wantErr:    true,
			wantErrMsg: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			backend := assess.NewAnthropicBackend(
				assess.WithAnthropicEndpoint(srv.URL),
				assess.WithAnthropicHTTPClient(srv.Client()),
				assess.WithAnthropicAPIKey(tt.apiKey),
			)

			resp, err := backend.Generate(context.Background(), assess.GenerateRequest{Prompt: "analyze"})

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
