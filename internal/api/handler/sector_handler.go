package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// SectorHandler 部门模块 HTTP 处理器
type SectorHandler struct {
	sectorSvc service.SectorService
	errs      *errorWriter
}

// NewSectorHandler 创建 SectorHandler
func NewSectorHandler(sectorSvc service.SectorService, errs *errorWriter) *SectorHandler {
	return &SectorHandler{sectorSvc: sectorSvc, errs: errs}
}

// ListSectors 获取部门列表
// GET /api/setores
func (h *SectorHandler) ListSectors(c *gin.Context) {
	sectors, err := h.sectorSvc.List(c.Request.Context())
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, sectors)
}

// GetSector 获取部门详情
// GET /api/setores/:id
func (h *SectorHandler) GetSector(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	sector, err := h.sectorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, sector)
}

// CreateSector 创建部门
// POST /api/setores
func (h *SectorHandler) CreateSector(c *gin.Context) {
	var req dto.CreateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	sector, err := h.sectorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.Created(c, sector)
}

// UpdateSector 更新部门
// PUT /api/setores/:id
func (h *SectorHandler) UpdateSector(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	sector, err := h.sectorSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, sector)
}

// DeleteSector 删除部门（仍有人员时拒绝）
// DELETE /api/setores/:id
func (h *SectorHandler) DeleteSector(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sectorSvc.Delete(c.Request.Context(), id); err != nil {
		h.errs.handle(c, err)
		return
	}
	response.NoContent(c)
}
