package dto

import "time"

// ── 计划周 DTO ──

// CreateWeekRequest 按参考日期创建周（缺省为当天）
type CreateWeekRequest struct {
	ReferenceDate string `json:"reference_date"`
}

// CloseWeekRequest 关闭周请求，ClosedBy 为自由文本
type CloseWeekRequest struct {
	ClosedBy *string `json:"closed_by" binding:"omitempty,max=100"`
}

// WeekListRequest 周列表查询参数
type WeekListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=open closed"`
}

// WeekResponse 周信息
type WeekResponse struct {
	ID        uint       `json:"id"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Status    string     `json:"status"`
	ClosedAt  *time.Time `json:"closed_at"`
	ClosedBy  *string    `json:"closed_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// CopyWeekResponse 复制结果，Count 仅统计实际插入的行
type CopyWeekResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}
