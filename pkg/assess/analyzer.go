package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// defaultTimeout bounds a single assessment call, including the
// upstream LLM round trip.
const defaultTimeout = 30 * time.Second

// Assessor produces a sell-potential analysis for a product.
type Assessor interface {
	Assess(ctx context.Context, p *domain.Product, fin *Financials) (*domain.Analysis, error)
	AssessOrFallback(ctx context.Context, p *domain.Product, fin *Financials) *domain.Analysis
}

// Analyzer implements Assessor using an LLM backend.
type Analyzer struct {
	backend     LLMBackend
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *slog.Logger
}

// AnalyzerOption configures the Analyzer.
type AnalyzerOption func(*Analyzer)

// WithTemperature sets the LLM temperature for assessments.
func WithTemperature(t float64) AnalyzerOption {
	return func(a *Analyzer) {
		a.temperature = t
	}
}

// WithMaxTokens sets the max tokens for LLM responses.
func WithMaxTokens(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.maxTokens = n
	}
}

// WithTimeout sets the per-assessment deadline.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// WithLogger sets the logger used for fallback reporting.
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(backend LLMBackend, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		backend:     backend,
		temperature: 0.2,
		maxTokens:   2048,
		timeout:     defaultTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess renders the assessment prompt, calls the backend in JSON
// mode, and parses the reply into an Analysis.
func (a *Analyzer) Assess(ctx context.Context, p *domain.Product, fin *Financials) (*domain.Analysis, error) {
	prompt, err := RenderAssessPrompt(p, fin)
	if err != nil {
		return nil, fmt.Errorf("rendering assess prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.backend.Generate(ctx, GenerateRequest{
		Prompt:      prompt,
		Format:      FormatJSON,
		Schema:      AnalysisSchema(),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("calling LLM for assessment: %w", err)
	}

	analysis, err := ParseAnalysis(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing assessment: %w", err)
	}
	return analysis, nil
}

// AssessOrFallback never fails: when the backend is unreachable or
// returns garbage, it logs the cause and returns the static fallback
// so callers always have an analysis to show.
func (a *Analyzer) AssessOrFallback(ctx context.Context, p *domain.Product, fin *Financials) *domain.Analysis {
	analysis, err := a.Assess(ctx, p, fin)
	if err != nil {
		a.logger.Warn("assessment failed, using fallback",
			"asin", p.ASIN,
			"backend", a.backend.Name(),
			"error", err,
		)
		return Fallback()
	}
	return analysis
}

var validGrades = map[domain.Grade]bool{
	domain.GradeA: true,
	domain.GradeB: true,
	domain.GradeC: true,
	domain.GradeD: true,
	domain.GradeF: true,
}

// ParseAnalysis decodes an LLM JSON reply into an Analysis. Markdown
// code fences are stripped first since some models wrap JSON mode
// output in them anyway.
func ParseAnalysis(content string) (*domain.Analysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Score arrives as a JSON number and models are free to emit a
	// fraction, so it is decoded as a float and rounded.
	var wire struct {
		domain.Analysis
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("decoding analysis JSON: %w", err)
	}

	analysis := wire.Analysis
	if !validGrades[analysis.Grade] {
		return nil, fmt.Errorf("invalid grade %q", analysis.Grade)
	}
	analysis.Score = int(math.Round(wire.Score))
	if analysis.Score < 0 {
		analysis.Score = 0
	}
	if analysis.Score > 100 {
		analysis.Score = 100
	}
	return &analysis, nil
}

// Fallback returns the canned analysis used when no assessment could
// be produced.
func Fallback() *domain.Analysis {
	return &domain.Analysis{
		Grade:            domain.GradeC,
		Score:            50,
		Summary:          "AI Analysis unavailable. Please check your API Key configuration.",
		FBAAnalysis:      "Data unavailable",
		FBMAnalysis:      "Data unavailable",
		Pros:             []string{"Stable BSR"},
		Cons:             []string{"Analysis failed"},
		CompetitionLevel: domain.LevelMedium,
		DemandLevel:      domain.LevelMedium,
		SuggestedAction:  "Check manually.",
	}
}
