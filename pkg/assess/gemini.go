package assess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiBackend implements LLMBackend using the Gemini generateContent API.
type GeminiBackend struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// GeminiOption configures the GeminiBackend.
type GeminiOption func(*GeminiBackend)

// WithGeminiBaseURL overrides the default API base URL.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(b *GeminiBackend) {
		b.baseURL = url
	}
}

// WithGeminiModel overrides the default model.
func WithGeminiModel(model string) GeminiOption {
	return func(b *GeminiBackend) {
		b.model = model
	}
}

// WithGeminiAPIKey overrides the API key (instead of reading from env).
func WithGeminiAPIKey(key string) GeminiOption {
	return func(b *GeminiBackend) {
		b.apiKey = key
	}
}

// WithGeminiHTTPClient overrides the default HTTP client.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(b *GeminiBackend) {
		b.client = c
	}
}

// NewGeminiBackend creates a new Gemini API backend. The API key is
// read from the GEMINI_API_KEY environment variable if not provided
// via options.
func NewGeminiBackend(opts ...GeminiOption) *GeminiBackend {
	b := &GeminiBackend{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   defaultGeminiModel,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (*GeminiBackend) Name() string {
	return "gemini"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      *float64        `json:"temperature,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// Generate calls the Gemini generateContent API. JSON mode sets the
// response MIME type and, when a schema is supplied, structured output
// enforcement.
func (b *GeminiBackend) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if b.apiKey == "" {
		return GenerateResponse{}, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	cfg := &geminiGenerationConfig{
		MaxOutputTokens: req.MaxTokens,
	}
	if req.Temperature > 0 {
		cfg.Temperature = &req.Temperature
	}
	if req.Format == FormatJSON {
		cfg.ResponseMimeType = "application/json"
		cfg.ResponseSchema = req.Schema
	}

	geminiReq := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: cfg,
	}
	if req.SystemMsg != "" {
		geminiReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemMsg}},
		}
	}

	body, err := json.Marshal(geminiReq)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", b.baseURL, b.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", b.apiKey)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("calling gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(respBody, "error.message"); msg.Exists() {
			return GenerateResponse{}, fmt.Errorf(
				"gemini API error (status %d): %s", resp.StatusCode, msg.String())
		}
		return GenerateResponse{}, fmt.Errorf(
			"gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	text := gjson.GetBytes(respBody, "candidates.0.content.parts.0.text")
	if !text.Exists() || text.String() == "" {
		return GenerateResponse{}, fmt.Errorf("empty response from gemini")
	}

	usage := gjson.GetBytes(respBody, "usageMetadata")
	return GenerateResponse{
		Content: text.String(),
		Model:   gjson.GetBytes(respBody, "modelVersion").String(),
		Usage: TokenUsage{
			PromptTokens:     int(usage.Get("promptTokenCount").Int()),
			CompletionTokens: int(usage.Get("candidatesTokenCount").Int()),
			TotalTokens:      int(usage.Get("totalTokenCount").Int()),
		},
	}, nil
}
