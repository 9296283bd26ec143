// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"quote_backend/internal/api"
	"quote_backend/internal/feature/auth/domain/entity"
	"quote_backend/internal/feature/auth/usecase"
	jwtmw "quote_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、トークンを発行します。
	Signup(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// CurrentUser は検証済みトークンのユーザーを返します。
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - 必須項目の欠落は400
// - メール形式の不正、72バイトを超えるパスワードは400
// - メール重複は400（conflict）
// - その他の失敗は500
// - 成功時はトークンとユーザーID付きで201
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorWithDetail(api.ErrorCodeValidationError, "a valid email and a password are required", err.Error()))
		return
	}

	res, err := h.auth.Signup(c.Request.Context(), string(req.Email), req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrMissingCredentials), errors.Is(err, usecase.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, api.NewError(api.ErrorCodeValidationError, err.Error()))
		return
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("signup rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.ErrorCodeConflict, "email already in use"))
		return
	default:
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeInternalError, "signup failed"))
		return
	}

	slog.Info("user signup successful", "user_id", res.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.AuthResponse{Token: res.Token, UserID: res.UserID})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 必須項目の欠落は400
// - 認証失敗は401（ユーザー列挙を防ぐため理由は区別しない）
// - その他の失敗は500
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorWithDetail(api.ErrorCodeValidationError, "email and password are required", err.Error()))
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, api.NewError(api.ErrorCodeValidationError, err.Error()))
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.NewError(api.ErrorCodeUnauthorized, "invalid email or password"))
		return
	default:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeInternalError, "login failed"))
		return
	}

	slog.Info("user login successful", "user_id", res.UserID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AuthResponse{Token: res.Token, UserID: res.UserID})
}

// Protected confirms the bearer token and echoes the caller's user ID.
func (h *AuthHandler) Protected(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.ErrorCodeUnauthorized, "missing bearer token"))
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusForbidden, api.NewError(api.ErrorCodeForbidden, "invalid token"))
		return
	default:
		slog.Error("protected lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.NewError(api.ErrorCodeInternalError, "failed to load user"))
		return
	}

	c.JSON(http.StatusOK, api.ProtectedResponse{Message: "access granted", UserID: user.ID})
}
