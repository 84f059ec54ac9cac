package model

import "time"

// 分配执行状态
const (
	AllocationPending = "pending"
	AllocationDone    = "done"
	AllocationNotDone = "not_done"
)

// ValidAllocationStatus 校验执行状态取值
func ValidAllocationStatus(s string) bool {
	switch s {
	case AllocationPending, AllocationDone, AllocationNotDone:
		return true
	}
	return false
}

// Allocation 某人某日被分配的一个条目，对应 allocations
// 同一 (week, person, date, item) 允许出现多行
type Allocation struct {
	ID        uint    `gorm:"primaryKey"                              json:"id"`
	WeekID    uint    `gorm:"not null;index"                          json:"week_id"`
	PersonID  uint    `gorm:"not null"                                json:"person_id"`
	ItemID    uint    `gorm:"not null"                                json:"item_id"`
	Date      string  `gorm:"type:varchar(10);not null"               json:"date"`
	SortOrder int     `gorm:"column:sort_order;not null"              json:"order"`
	Status    string  `gorm:"type:varchar(10);not null"               json:"status"`
	Comment   *string `gorm:"type:text"                               json:"comment"`
	Item      *Item   `gorm:"foreignKey:ItemID"                       json:"item,omitempty"`
	// 0002 迁移前的历史行没有时间戳
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Allocation) TableName() string { return "allocations" }
