package dto

import "time"

// ── 分配模块 DTO ──

// CreateAllocationRequest 向某人某日添加条目；Order 缺省时追加到末尾
type CreateAllocationRequest struct {
	PersonID uint   `json:"person_id" binding:"required"`
	Date     string `json:"date"      binding:"required"`
	ItemID   uint   `json:"item_id"   binding:"required"`
	Order    *int   `json:"order"     binding:"omitempty,min=0"`
}

// BulkReplaceRequest 整体替换一个日格的条目，顺序即列表顺序
type BulkReplaceRequest struct {
	PersonID uint   `json:"person_id" binding:"required"`
	Date     string `json:"date"      binding:"required"`
	ItemIDs  []uint `json:"item_ids"  binding:"required"`
}

// UpdateAllocationStatusRequest 更新执行状态
type UpdateAllocationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAllocationCommentRequest 更新备注，null 或空串清空
type UpdateAllocationCommentRequest struct {
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// MoveAllocationRequest 移动到其他人员/日期
type MoveAllocationRequest struct {
	PersonID uint   `json:"person_id" binding:"required"`
	Date     string `json:"date"      binding:"required"`
}

// UpdateAllocationOrderRequest 显式设置显示顺序
type UpdateAllocationOrderRequest struct {
	Order *int `json:"order" binding:"required,min=0"`
}

// AllocationItem 分配中嵌入的条目摘要
type AllocationItem struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// AllocationResponse 分配信息；条目已删除时 Item 为 null
type AllocationResponse struct {
	ID        uint            `json:"id"`
	WeekID    uint            `json:"week_id"`
	PersonID  uint            `json:"person_id"`
	ItemID    uint            `json:"item_id"`
	Date      string          `json:"date"`
	Order     int             `json:"order"`
	Status    string          `json:"status"`
	Comment   *string         `json:"comment"`
	Item      *AllocationItem `json:"item"`
	CreatedAt *time.Time      `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}
