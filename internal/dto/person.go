package dto

import "time"

// ── 人员模块 DTO ──

// CreatePersonRequest 创建人员请求
type CreatePersonRequest struct {
	Name     string `json:"name"      binding:"required,max=100"`
	SectorID uint   `json:"sector_id" binding:"required"`
	Active   *bool  `json:"active"`
	Order    *int   `json:"order"     binding:"omitempty,min=0"`
}

// UpdatePersonRequest 更新人员请求（缺失字段保持不变）
type UpdatePersonRequest struct {
	Name     *string `json:"name"      binding:"omitempty,max=100"`
	SectorID *uint   `json:"sector_id"`
	Active   *bool   `json:"active"`
	Order    *int    `json:"order"     binding:"omitempty,min=0"`
}

// PersonListRequest 人员列表过滤条件
type PersonListRequest struct {
	SectorID *uint `form:"sector_id"`
	Active   *bool `form:"active"`
}

// PersonResponse 人员信息（含所属部门）
type PersonResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	SectorID  uint            `json:"sector_id"`
	Active    bool            `json:"active"`
	Order     int             `json:"order"`
	Sector    *SectorResponse `json:"sector,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
