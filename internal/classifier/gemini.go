package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nao1215/sentinel/internal/model"
)

// Defaults for the Gemini classifier.
const (
	DefaultModel               = "gemini-2.5-flash"
	DefaultTemperature float32 = 0.1
)

// generateFunc matches genai's Models.GenerateContent.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content,
	config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Gemini classifies text with the Google Gemini API.
type Gemini struct {
	generate    generateFunc
	model       string
	temperature float32
	httpClient  *http.Client
	logger      *slog.Logger
}

// GeminiOption configures a Gemini classifier.
type GeminiOption func(*Gemini)

// WithModel sets the model name.
func WithModel(name string) GeminiOption {
	return func(g *Gemini) {
		if name != "" {
			g.model = name
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) GeminiOption {
	return func(g *Gemini) {
		g.temperature = t
	}
}

// WithHTTPClient sets the HTTP client used to reach the API.
// Timeouts and proxies are configured on the client.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) {
		g.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) GeminiOption {
	return func(g *Gemini) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGemini creates a Gemini classifier for the Gemini Developer API.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	g := newGemini(nil, opts...)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.generate = client.Models.GenerateContent

	return g, nil
}

// newGemini builds a Gemini around an arbitrary generate function.
func newGemini(generate generateFunc, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		generate:    generate,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns "gemini/<model>".
func (g *Gemini) Name() string {
	return "gemini/" + g.model
}

// Analyze sends text verbatim to the model and decodes the answer.
// Any failure yields Fallback().
func (g *Gemini) Analyze(ctx context.Context, text string) model.AnalysisResult {
	start := time.Now()
	digest := model.ShortDigest(text)

	result, err := g.analyze(ctx, text)
	if err != nil {
		g.logger.Warn("classification unavailable, using fallback verdict",
			"classifier", g.Name(),
			"digest", digest,
			"error", err,
		)
		return Fallback()
	}

	g.logger.Debug("classification complete",
		"classifier", g.Name(),
		"digest", digest,
		"risk_score", result.RiskScore,
		"category", string(result.Category),
		"elapsed", time.Since(start),
	)
	return result
}

func (g *Gemini) analyze(ctx context.Context, text string) (model.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return model.AnalysisResult{}, ErrEmptyInput
	}

	resp, err := g.generate(ctx, g.model, genai.Text(text), RequestConfig(g.temperature))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return model.AnalysisResult{}, ErrEmptyResponse
	}

	return Decode([]byte(resp.Text()))
}
