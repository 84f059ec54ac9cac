package model

// DefaultItemColor 未指定颜色时的条目颜色
const DefaultItemColor = "#6366f1"

// Item 活动目录条目，对应 items
// SuggestedSectorID 仅作提示，分配时不做约束
type Item struct {
	ID                uint    `gorm:"primaryKey"                        json:"id"`
	Title             string  `gorm:"type:varchar(200);not null"        json:"title"`
	Description       *string `gorm:"type:text"                         json:"description"`
	SuggestedSectorID *uint   `gorm:"index"                             json:"suggested_sector_id"`
	Color             string  `gorm:"type:varchar(7);not null"          json:"color"`
	Active            bool    `gorm:"not null"                          json:"active"`
	SuggestedSector   *Sector `gorm:"foreignKey:SuggestedSectorID"      json:"suggested_sector,omitempty"`
	Timestamps
}

// TableName 指定表名
func (Item) TableName() string { return "items" }
