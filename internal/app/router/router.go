// Package router はHTTPルーティングを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "quote_backend/internal/feature/auth/transport/handler"
	quotehandler "quote_backend/internal/feature/quotes/transport/handler"
	"quote_backend/internal/platform/http/handler"
	jwtmw "quote_backend/internal/platform/jwt"
)

// Options holds optional router settings.
type Options struct {
	// CORSAllowOrigins enables CORS for the listed origins when non-empty.
	CORSAllowOrigins []string
}

// NewRouter はgin.Engineを組み立てます。
// /healthz・/signup・/login は認証不要、それ以外はverifierによるBearerトークン検証を通したルートです。
// opts.CORSAllowOriginsが空でなければ、そのオリジンに対してCORSを有効にします。
func NewRouter(authHandler *authhandler.AuthHandler, quoteHandler *quotehandler.QuoteHandler,
	verifier jwtmw.TokenVerifier, opts Options) *gin.Engine {
	r := gin.Default()

	if len(opts.CORSAllowOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSAllowOrigins
		cfg.AddAllowHeaders("Authorization")
		r.Use(cors.New(cfg))
	}

	// 認証不要
	// 導通確認用
	handler.RegisterHealth(r)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// → リクエストヘッダーに Bearer トークンが必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(verifier))
	{
		auth.GET("/protected", authHandler.Protected)
		auth.POST("/ai/quote", quoteHandler.Generate)
		auth.POST("/quotes", quoteHandler.Save)
		auth.GET("/quotes", quoteHandler.List)
		auth.DELETE("/quotes", quoteHandler.Delete)
	}

	return r
}
