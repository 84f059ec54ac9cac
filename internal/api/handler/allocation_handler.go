package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// AllocationHandler 分配 HTTP 处理器
type AllocationHandler struct {
	allocationSvc service.AllocationService
	errs          *errorWriter
}

// NewAllocationHandler 创建 AllocationHandler
func NewAllocationHandler(allocationSvc service.AllocationService, errs *errorWriter) *AllocationHandler {
	return &AllocationHandler{allocationSvc: allocationSvc, errs: errs}
}

// ListAllocations 获取周内全部分配
// GET /api/semanas/:id/alocacoes
func (h *AllocationHandler) ListAllocations(c *gin.Context) {
	weekID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.allocationSvc.ListByWeek(c.Request.Context(), weekID)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, list)
}

// CreateAllocation 添加分配
// POST /api/semanas/:id/alocacoes
func (h *AllocationHandler) CreateAllocation(c *gin.Context) {
	weekID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	alloc, err := h.allocationSvc.Create(c.Request.Context(), weekID, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.Created(c, alloc)
}

// BulkReplace 整体替换日格
// POST /api/semanas/:id/alocacoes/bulk
func (h *AllocationHandler) BulkReplace(c *gin.Context) {
	weekID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.BulkReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	list, err := h.allocationSvc.BulkReplace(c.Request.Context(), weekID, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, list)
}

// UpdateStatus 更新执行状态
// PATCH /api/alocacoes/:id/status
func (h *AllocationHandler) UpdateStatus(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAllocationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	alloc, err := h.allocationSvc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, alloc)
}

// UpdateComment 更新备注
// PATCH /api/alocacoes/:id/comentario
func (h *AllocationHandler) UpdateComment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAllocationCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	alloc, err := h.allocationSvc.UpdateComment(c.Request.Context(), id, req.Comment)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, alloc)
}

// MoveAllocation 移动到其他人员或日期
// PATCH /api/alocacoes/:id/mover
func (h *AllocationHandler) MoveAllocation(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.MoveAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	alloc, err := h.allocationSvc.Move(c.Request.Context(), id, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, alloc)
}

// UpdateOrder 调整显示顺序
// PATCH /api/alocacoes/:id/ordem
func (h *AllocationHandler) UpdateOrder(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAllocationOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	alloc, err := h.allocationSvc.UpdateOrder(c.Request.Context(), id, *req.Order)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, alloc)
}

// DeleteAllocation 删除分配
// DELETE /api/alocacoes/:id
func (h *AllocationHandler) DeleteAllocation(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.allocationSvc.Delete(c.Request.Context(), id); err != nil {
		h.errs.handle(c, err)
		return
	}
	response.NoContent(c)
}
