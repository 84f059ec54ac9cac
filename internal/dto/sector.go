package dto

import "time"

// ── 部门模块 DTO ──

// CreateSectorRequest 创建部门请求
type CreateSectorRequest struct {
	Name  string `json:"name"  binding:"required,max=100"`
	Order *int   `json:"order" binding:"omitempty,min=0"`
}

// UpdateSectorRequest 更新部门请求（缺失字段保持不变）
type UpdateSectorRequest struct {
	Name  *string `json:"name"  binding:"omitempty,max=100"`
	Order *int    `json:"order" binding:"omitempty,min=0"`
}

// SectorResponse 部门信息
type SectorResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
