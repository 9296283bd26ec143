// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"quote_backend/internal/api"
	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/transport/http/dto"
	"quote_backend/internal/feature/quotes/usecase"
	jwtmw "quote_backend/internal/platform/jwt"
)

// QuoteUsecase は名言操作のユースケースを定義します。
type QuoteUsecase interface {
	SaveQuotes(ctx context.Context, userID string, quotes []entity.Quote) (*entity.QuoteCollection, error)
	ListQuotes(ctx context.Context, userID string) ([]entity.Quote, error)
	DeleteQuote(ctx context.Context, userID string, target entity.Quote) (int64, error)
	GenerateQuote(ctx context.Context, category string) (string, error)
}

// QuoteHandler は名言APIのHTTPリクエストを処理します。
// すべての操作はトークンのユーザーに紐付き、リクエストボディのuserIDは参照しません。
type QuoteHandler struct {
	quotes QuoteUsecase
}

// NewQuoteHandler はQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(quotes QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// requireUser returns the authenticated user ID or writes 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.ErrorCodeUnauthorized, "missing bearer token"))
		return "", false
	}
	return userID, true
}

// Generate は POST /ai/quote を処理します。
// - categoryの欠落は400
// - 生成サービスの失敗は500（upstream_error）
func (h *QuoteHandler) Generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.GenerateQuoteJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.NewErrorWithDetail(api.ErrorCodeValidationError, "category is required", err.Error()))
		return
	}

	text, err := h.quotes.GenerateQuote(c.Request.Context(), req.Category)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrMissingCategory):
		c.JSON(http.StatusBadRequest, api.NewError(api.ErrorCodeValidationError, err.Error()))
		return
	default:
		slog.Error("quote generation failed", "error", err, "user_id", userID, "category", req.Category)
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeUpstreamError, "failed to generate quote"))
		return
	}

	c.JSON(http.StatusOK, api.GenerateQuoteResponse{Quote: text})
}

// Save は POST /quotes を処理します。
func (h *QuoteHandler) Save(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.SaveQuotesJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.NewErrorWithDetail(api.ErrorCodeValidationError, "quotes must be an array of {category, text}", err.Error()))
		return
	}

	col, err := h.quotes.SaveQuotes(c.Request.Context(), userID, dto.ToEntities(req.Quotes))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrInvalidQuote):
		c.JSON(http.StatusBadRequest, api.NewErrorWithDetail(api.ErrorCodeValidationError, "quotes must be an array of {category, text}", err.Error()))
		return
	default:
		slog.Error("failed to save quotes", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeInternalError, "failed to save quotes"))
		return
	}

	c.JSON(http.StatusOK, api.SaveQuotesResponse{Message: "quotes saved", Quotes: dto.FromEntities(col.Quotes)})
}

// List は GET /quotes を処理します。コレクションが無い場合は空配列を返します。
func (h *QuoteHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	quotes, err := h.quotes.ListQuotes(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list quotes", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeInternalError, "failed to fetch quotes"))
		return
	}

	c.JSON(http.StatusOK, api.QuotesResponse{Quotes: dto.FromEntities(quotes)})
}

// Delete は DELETE /quotes を処理します。
// - 対象の欠落は400
// - 一致するエントリが無い場合は404
func (h *QuoteHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.DeleteQuoteJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.NewErrorWithDetail(api.ErrorCodeValidationError, "quoteToDelete {category, text} is required", err.Error()))
		return
	}

	removed, err := h.quotes.DeleteQuote(c.Request.Context(), userID, dto.ToEntity(req.QuoteToDelete))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrInvalidQuote):
		c.JSON(http.StatusBadRequest, api.NewError(api.ErrorCodeValidationError, "quoteToDelete {category, text} is required"))
		return
	case errors.Is(err, usecase.ErrQuoteNotFound):
		c.JSON(http.StatusNotFound, api.NewError(api.ErrorCodeNotFound, "quote not found"))
		return
	default:
		slog.Error("failed to delete quote", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeInternalError, "failed to delete quote"))
		return
	}

	slog.Info("quote deleted", "user_id", userID, "removed", removed)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "quote deleted"})
}
