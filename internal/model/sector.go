package model

// Sector 部门/团队，对应 sectors
type Sector struct {
	ID        uint   `gorm:"primaryKey"                        json:"id"`
	Name      string `gorm:"type:varchar(100);not null;unique" json:"name"`
	SortOrder int    `gorm:"column:sort_order;not null"        json:"order"`
	Timestamps
}

// TableName 指定表名
func (Sector) TableName() string { return "sectors" }
