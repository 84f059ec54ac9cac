package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "weekly-planner/backend/pkg/errors"
	"weekly-planner/backend/pkg/response"
)

// Recovery panic 恢复中间件，记录堆栈后返回 INTERNAL_ERROR
// devMode 为 true 时 details 携带 panic 值
func Recovery(logger *zap.Logger, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error("请求处理发生 panic",
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.Stack("stack"),
			)
			if devMode {
				response.ErrorWithDetails(c, http.StatusInternalServerError, apperrors.CodeInternal,
					"Erro interno do servidor", fmt.Sprint(rec))
				return
			}
			response.Error(c, http.StatusInternalServerError, apperrors.CodeInternal, "Erro interno do servidor")
		}()

		c.Next()
	}
}
