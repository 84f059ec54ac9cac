package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler 创建 HealthHandler，now 为 nil 时使用 time.Now
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Health 存活探针，响应不包裹 data
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}
