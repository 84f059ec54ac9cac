package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// ObservationHandler 周备注 HTTP 处理器
type ObservationHandler struct {
	observationSvc service.ObservationService
	errs           *errorWriter
}

// NewObservationHandler 创建 ObservationHandler
func NewObservationHandler(observationSvc service.ObservationService, errs *errorWriter) *ObservationHandler {
	return &ObservationHandler{observationSvc: observationSvc, errs: errs}
}

// ListObservations 获取周内全部备注
// GET /api/semanas/:id/observacoes
func (h *ObservationHandler) ListObservations(c *gin.Context) {
	weekID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.observationSvc.ListByWeek(c.Request.Context(), weekID)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, list)
}

// GetObservation 获取单人备注，不存在时 data 为 null
// GET /api/semanas/:id/pessoas/:pessoaId/observacao
func (h *ObservationHandler) GetObservation(c *gin.Context) {
	weekID, personID, ok := parseWeekPerson(c)
	if !ok {
		return
	}

	obs, err := h.observationSvc.Get(c.Request.Context(), weekID, personID)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	if obs == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, obs)
}

// UpsertObservation 写入备注，空文本删除
// PUT /api/semanas/:id/pessoas/:pessoaId/observacao
func (h *ObservationHandler) UpsertObservation(c *gin.Context) {
	weekID, personID, ok := parseWeekPerson(c)
	if !ok {
		return
	}

	var req dto.UpsertObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	obs, err := h.observationSvc.Upsert(c.Request.Context(), weekID, personID, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	if obs == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, obs)
}

func parseWeekPerson(c *gin.Context) (uint, uint, bool) {
	weekID, ok := ParseIDParam(c, "id")
	if !ok {
		return 0, 0, false
	}
	personID, ok := ParseIDParam(c, "pessoaId")
	if !ok {
		return 0, 0, false
	}
	return weekID, personID, true
}
