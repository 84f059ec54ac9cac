package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// WeekHandler 计划周生命周期 HTTP 处理器
type WeekHandler struct {
	weekSvc service.WeekService
	errs    *errorWriter
}

// NewWeekHandler 创建 WeekHandler
func NewWeekHandler(weekSvc service.WeekService, errs *errorWriter) *WeekHandler {
	return &WeekHandler{weekSvc: weekSvc, errs: errs}
}

// ListWeeks 分页获取周列表
// GET /api/semanas?status=&page=&pageSize=
func (h *WeekHandler) ListWeeks(c *gin.Context) {
	var req dto.WeekListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	list, total, err := h.weekSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CurrentWeek 查找或创建当前周
// GET /api/semanas/atual
func (h *WeekHandler) CurrentWeek(c *gin.Context) {
	week, err := h.weekSvc.Current(c.Request.Context())
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, week)
}

// GetWeek 获取周详情
// GET /api/semanas/:id
func (h *WeekHandler) GetWeek(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	week, err := h.weekSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, week)
}

// CreateWeek 按参考日期创建周，已存在时返回原记录
// POST /api/semanas
func (h *WeekHandler) CreateWeek(c *gin.Context) {
	var req dto.CreateWeekRequest
	// 请求体可省略
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.errs.bindError(c, err)
			return
		}
	}

	week, err := h.weekSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.Created(c, week)
}

// PreviousWeek 上一周
// GET /api/semanas/:id/anterior
func (h *WeekHandler) PreviousWeek(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	week, err := h.weekSvc.Previous(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, week)
}

// NextWeek 下一周
// GET /api/semanas/:id/proxima
func (h *WeekHandler) NextWeek(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	week, err := h.weekSvc.Next(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, week)
}

// CloseWeek 关闭周
// PATCH /api/semanas/:id/fechar
func (h *WeekHandler) CloseWeek(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CloseWeekRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.errs.bindError(c, err)
			return
		}
	}

	week, err := h.weekSvc.Close(c.Request.Context(), id, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, week)
}

// ReopenWeek 重新开放周
// PATCH /api/semanas/:id/reabrir
func (h *WeekHandler) ReopenWeek(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	week, err := h.weekSvc.Reopen(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, week)
}
