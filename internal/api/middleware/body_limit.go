package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "weekly-planner/backend/pkg/errors"
	"weekly-planner/backend/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）
// 声明长度超限时直接拒绝；未声明长度的请求体在读取时截断，由绑定阶段返回 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, apperrors.CodeTooLarge, "Corpo da requisição muito grande")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
