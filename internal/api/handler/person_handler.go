package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// PersonHandler 人员模块 HTTP 处理器
type PersonHandler struct {
	personSvc service.PersonService
	errs      *errorWriter
}

// NewPersonHandler 创建 PersonHandler
func NewPersonHandler(personSvc service.PersonService, errs *errorWriter) *PersonHandler {
	return &PersonHandler{personSvc: personSvc, errs: errs}
}

// ListPeople 获取人员列表
// GET /api/pessoas?sector_id=&active=
func (h *PersonHandler) ListPeople(c *gin.Context) {
	var req dto.PersonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	people, err := h.personSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, people)
}

// GetPerson 获取人员详情
// GET /api/pessoas/:id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	person, err := h.personSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, person)
}

// CreatePerson 创建人员
// POST /api/pessoas
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	person, err := h.personSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.Created(c, person)
}

// UpdatePerson 更新人员
// PUT /api/pessoas/:id
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	person, err := h.personSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, person)
}

// TogglePersonActive 切换在职状态
// PATCH /api/pessoas/:id/ativo
func (h *PersonHandler) TogglePersonActive(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	person, err := h.personSvc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, person)
}

// DeletePerson 删除人员
// DELETE /api/pessoas/:id
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.personSvc.Delete(c.Request.Context(), id); err != nil {
		h.errs.handle(c, err)
		return
	}
	response.NoContent(c)
}
