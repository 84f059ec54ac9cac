package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// StatsHandler 周统计 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
	errs     *errorWriter
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService, errs *errorWriter) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc, errs: errs}
}

// GetWeekStats 周完成度统计
// GET /api/estatisticas/semana/:semanaId
func (h *StatsHandler) GetWeekStats(c *gin.Context) {
	weekID, ok := ParseIDParam(c, "semanaId")
	if !ok {
		return
	}

	stats, err := h.statsSvc.GetWeekStats(c.Request.Context(), weekID)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, stats)
}
