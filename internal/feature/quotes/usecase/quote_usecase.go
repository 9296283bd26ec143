package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quote_backend/internal/feature/quotes/domain/entity"
)

const (
	// QuotePromptTemplate は名言生成のプロンプトテンプレートです。
	QuotePromptTemplate = "Generate an inspirational quote about %s"

	// DefaultGenerateTimeout bounds a single generation call when no timeout is configured.
	DefaultGenerateTimeout = 15 * time.Second
)

// QuoteRepository はユーザーごとの名言コレクションの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteRepository interface {
	// Append adds quotes to the end of the user's collection, creating it when absent.
	// Implementations must append atomically in storage, never read-modify-write.
	Append(ctx context.Context, userID string, quotes []entity.Quote) (*entity.QuoteCollection, error)

	// List returns the user's quotes in insertion order; empty when there is no collection.
	List(ctx context.Context, userID string) ([]entity.Quote, error)

	// Remove deletes every entry exactly matching target and returns how many were removed.
	// It returns ErrQuoteNotFound when nothing matched.
	Remove(ctx context.Context, userID string, target entity.Quote) (int64, error)
}

// QuoteGenerator はプロンプトからテキストを生成する外部サービスのインターフェースです。
type QuoteGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// quoteUsecase は名言の保存・一覧・削除・生成のビジネスロジックを提供します。
type quoteUsecase struct {
	quotes          QuoteRepository
	generator       QuoteGenerator
	generateTimeout time.Duration
}

// NewQuoteUsecase はquoteUsecaseの新しいインスタンスを生成します。
// generateTimeout が0以下の場合は DefaultGenerateTimeout を使用します。
func NewQuoteUsecase(quotes QuoteRepository, generator QuoteGenerator, generateTimeout time.Duration) *quoteUsecase {
	if generateTimeout <= 0 {
		generateTimeout = DefaultGenerateTimeout
	}
	return &quoteUsecase{
		quotes:          quotes,
		generator:       generator,
		generateTimeout: generateTimeout,
	}
}

func validateQuote(q entity.Quote) error {
	if strings.TrimSpace(q.Category) == "" || strings.TrimSpace(q.Text) == "" {
		return ErrInvalidQuote
	}
	return nil
}

// SaveQuotes appends quotes to the user's collection and returns the updated collection.
func (u *quoteUsecase) SaveQuotes(ctx context.Context, userID string, quotes []entity.Quote) (*entity.QuoteCollection, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	for i, q := range quotes {
		if err := validateQuote(q); err != nil {
			return nil, fmt.Errorf("quotes[%d]: %w", i, err)
		}
	}
	return u.quotes.Append(ctx, userID, quotes)
}

// ListQuotes returns the user's quotes, never nil.
func (u *quoteUsecase) ListQuotes(ctx context.Context, userID string) ([]entity.Quote, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	quotes, err := u.quotes.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if quotes == nil {
		quotes = []entity.Quote{}
	}
	return quotes, nil
}

// DeleteQuote removes every entry matching target.
func (u *quoteUsecase) DeleteQuote(ctx context.Context, userID string, target entity.Quote) (int64, error) {
	if userID == "" {
		return 0, ErrMissingUser
	}
	if err := validateQuote(target); err != nil {
		return 0, err
	}
	return u.quotes.Remove(ctx, userID, target)
}

// GenerateQuote は指定カテゴリの名言を外部生成サービスで作成し、そのまま返します。
// リトライやキャッシュは行いません。
func (u *quoteUsecase) GenerateQuote(ctx context.Context, category string) (string, error) {
	if strings.TrimSpace(category) == "" {
		return "", ErrMissingCategory
	}

	ctx, cancel := context.WithTimeout(ctx, u.generateTimeout)
	defer cancel()

	prompt := fmt.Sprintf(QuotePromptTemplate, category)
	text, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: category %q: %w", ErrGeneration, category, err)
	}
	return text, nil
}
