// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quote_backend/internal/api"
)

// HealthPath は導通確認のパスです。
const HealthPath = "/healthz"

// RegisterHealth は /healthz を GET/HEAD/OPTIONS で登録します。
// 認証ミドルウェアより前に登録し、トークン無しで応答させます。
func RegisterHealth(r gin.IRoutes) {
	r.GET(HealthPath, Health)
	r.HEAD(HealthPath, Health)
	r.OPTIONS(HealthPath, Health)
}

// Health は稼働確認に応答します。GETは {status:"ok"}、HEADは本文なしの200、OPTIONSは204。
// キャッシュされた200が障害を隠さないよう、常に no-store を付けます。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Header("Allow", "GET, HEAD, OPTIONS")
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}
