package model

import "time"

// 周状态
const (
	WeekStatusOpen   = "open"
	WeekStatusClosed = "closed"
)

// Week 周一至周五的计划周期，对应 weeks
// StartDate / EndDate 以 "2006-01-02" 文本存储
type Week struct {
	ID        uint       `gorm:"primaryKey"                          json:"id"`
	StartDate string     `gorm:"type:varchar(10);not null;unique"    json:"start_date"`
	EndDate   string     `gorm:"type:varchar(10);not null"           json:"end_date"`
	Status    string     `gorm:"type:varchar(10);not null"           json:"status"`
	ClosedAt  *time.Time `json:"closed_at"`
	ClosedBy  *string    `gorm:"type:varchar(100)"                   json:"closed_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime"                      json:"created_at"`
}

// TableName 指定表名
func (Week) TableName() string { return "weeks" }

// IsClosed 周是否已关闭
func (w *Week) IsClosed() bool { return w.Status == WeekStatusClosed }
