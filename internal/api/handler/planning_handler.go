package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	calendarContentType = "text/calendar; charset=utf-8"
)

// PlanningHandler 周计划视图、复制与导出 HTTP 处理器
type PlanningHandler struct {
	planningSvc service.PlanningService
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
	errs        *errorWriter
}

// NewPlanningHandler 创建 PlanningHandler
func NewPlanningHandler(
	planningSvc service.PlanningService,
	exportSvc service.ExportService,
	calendarSvc service.CalendarService,
	errs *errorWriter,
) *PlanningHandler {
	return &PlanningHandler{
		planningSvc: planningSvc,
		exportSvc:   exportSvc,
		calendarSvc: calendarSvc,
		errs:        errs,
	}
}

// GetPlanning 部门 → 人员 → 日期 → 分配
// GET /api/semanas/:id/planejamento
func (h *PlanningHandler) GetPlanning(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planningSvc.GetPlanning(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, plan)
}

// CopyWeek 将源周分配复制到 :id
// POST /api/semanas/:id/copiar-de/:origemId
func (h *PlanningHandler) CopyWeek(c *gin.Context) {
	destID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	sourceID, ok := ParseIDParam(c, "origemId")
	if !ok {
		return
	}

	result, err := h.planningSvc.CopyWeek(c.Request.Context(), sourceID, destID)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, result)
}

// ExportWeek 导出周计划为 Excel
// GET /api/semanas/:id/exportar
func (h *PlanningHandler) ExportWeek(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportWeek(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// WeekCalendar 导出 iCalendar
// GET /api/semanas/:id/calendario?pessoa_id=
func (h *PlanningHandler) WeekCalendar(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	personID, ok := ParseOptionalIDQuery(c, "pessoa_id")
	if !ok {
		return
	}

	body, err := h.calendarSvc.WeekCalendar(c.Request.Context(), id, personID)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	c.Data(http.StatusOK, calendarContentType, []byte(body))
}
