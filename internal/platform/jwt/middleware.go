// Package jwtmw issues and verifies session tokens and provides the gin auth middleware.
package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quote_backend/internal/api"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

// TokenVerifier is satisfied by *Verifier.
type TokenVerifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// A missing bearer token yields 401; a token that fails verification yields 403.
func AuthRequired(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(api.ErrorCodeUnauthorized, "missing bearer token"))
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewError(api.ErrorCodeUnauthorized, "missing bearer token"))
			return
		}

		// 2. Verify signature and expiry
		claims, err := v.Verify(tokenStr)
		if err != nil {
			slog.Warn("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, api.NewErrorWithDetail(api.ErrorCodeForbidden, "invalid token", err.Error()))
			return
		}

		// 3. Pass control to the next handler
		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

// UserID returns the authenticated user ID stored by AuthRequired.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}
