package handler

import (
	"github.com/gin-gonic/gin"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/service"
	"weekly-planner/backend/pkg/response"
)

// ItemHandler 条目模块 HTTP 处理器
type ItemHandler struct {
	itemSvc service.ItemService
	errs    *errorWriter
}

// NewItemHandler 创建 ItemHandler
func NewItemHandler(itemSvc service.ItemService, errs *errorWriter) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc, errs: errs}
}

// ListItems 获取条目列表
// GET /api/itens?suggested_sector_id=&active=
func (h *ItemHandler) ListItems(c *gin.Context) {
	var req dto.ItemListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	items, err := h.itemSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, items)
}

// GetItem 获取条目详情
// GET /api/itens/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.itemSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, item)
}

// CreateItem 创建条目
// POST /api/itens
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	item, err := h.itemSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateItem 更新条目
// PUT /api/itens/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.bindError(c, err)
		return
	}

	item, err := h.itemSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, item)
}

// ToggleItemActive 切换启用状态
// PATCH /api/itens/:id/ativo
func (h *ItemHandler) ToggleItemActive(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.itemSvc.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.errs.handle(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteItem 删除条目
// DELETE /api/itens/:id
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.itemSvc.Delete(c.Request.Context(), id); err != nil {
		h.errs.handle(c, err)
		return
	}
	response.NoContent(c)
}
