// Package gemini はGoogle Gemini APIを使用した名言生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"quote_backend/internal/feature/quotes/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// DefaultMaxOutputTokens bounds the length of a generated quote.
	DefaultMaxOutputTokens = 256
)

var (
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("gemini returned an empty response")

	// ErrNotConfigured is returned by Unconfigured when no API key was provided.
	ErrNotConfigured = errors.New("gemini api key is not configured")
)

// Config はGeminiGeneratorの設定です。
type Config struct {
	APIKey          string
	Model           string
	MaxOutputTokens int32
	// HTTPClient carries the request timeout. nil uses the genai default client.
	HTTPClient *http.Client
	// BaseURL overrides the API endpoint (tests, proxies).
	BaseURL string
}

// GeminiGenerator はGoogle Gemini APIを使用して名言を生成します。
type GeminiGenerator struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
}

// GeminiGeneratorがQuoteGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.QuoteGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はAPIキー認証でGeminiGeneratorを生成します。
// クライアントは起動時に1回だけ生成し、ハンドラーへ注入します。
func NewGeminiGenerator(ctx context.Context, cfg Config) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{
		client:          client,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// Generate はプロンプトから1回だけテキストを生成します。リトライは行いません。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxOutputTokens,
		// 2.5系では思考トークンもMaxOutputTokensに含まれ、上限に達すると本文が空になる
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Unconfigured is used when GEMINI_API_KEY is absent so the rest of the API still starts.
type Unconfigured struct{}

var _ usecase.QuoteGenerator = Unconfigured{}

// Generate always fails with ErrNotConfigured.
func (Unconfigured) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
