package dto

import "time"

// ── 活动条目 DTO ──

// CreateItemRequest 创建条目请求
type CreateItemRequest struct {
	Title             string  `json:"title"               binding:"required,max=200"`
	Description       *string `json:"description"`
	SuggestedSectorID *uint   `json:"suggested_sector_id"`
	Color             string  `json:"color"               binding:"omitempty,hexcolor"`
	Active            *bool   `json:"active"`
}

// UpdateItemRequest 更新条目请求
// Description 与 SuggestedSectorID 为三态：缺失保持、null 清空、值覆盖
type UpdateItemRequest struct {
	Title             *string          `json:"title"               binding:"omitempty,max=200"`
	Description       Optional[string] `json:"description"`
	SuggestedSectorID Optional[uint]   `json:"suggested_sector_id"`
	Color             *string          `json:"color"               binding:"omitempty,hexcolor"`
	Active            *bool            `json:"active"`
}

// ItemListRequest 条目列表过滤条件
type ItemListRequest struct {
	SuggestedSectorID *uint `form:"suggested_sector_id"`
	Active            *bool `form:"active"`
}

// ItemResponse 条目信息（含建议部门）
type ItemResponse struct {
	ID                uint            `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	SuggestedSectorID *uint           `json:"suggested_sector_id"`
	Color             string          `json:"color"`
	Active            bool            `json:"active"`
	SuggestedSector   *SectorResponse `json:"suggested_sector,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
