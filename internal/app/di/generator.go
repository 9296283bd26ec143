package di

import (
	"context"
	"log/slog"

	"quote_backend/internal/app/config"
	"quote_backend/internal/feature/quotes/adapters/gemini"
	quoteusecase "quote_backend/internal/feature/quotes/usecase"
	infrahttp "quote_backend/internal/platform/http"
)

// NewQuoteGenerator creates the Gemini generator with a timeout-bound HTTP client.
// Without an API key it returns gemini.Unconfigured so /ai/quote fails with 500 and the rest of the API still serves.
func NewQuoteGenerator(ctx context.Context, cfg config.GeminiConfig) (quoteusecase.QuoteGenerator, error) {
	if cfg.APIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set. /ai/quote will fail until it is configured.")
		return gemini.Unconfigured{}, nil
	}
	return gemini.NewGeminiGenerator(ctx, gemini.Config{
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
		HTTPClient:      infrahttp.NewClient(infrahttp.ClientConfig{Timeout: cfg.Timeout}),
	})
}
