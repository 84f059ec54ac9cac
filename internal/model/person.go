package model

// Person 可分配活动的人员，对应 people
type Person struct {
	ID        uint    `gorm:"primaryKey"                     json:"id"`
	Name      string  `gorm:"type:varchar(100);not null"     json:"name"`
	SectorID  uint    `gorm:"not null;index"                 json:"sector_id"`
	Active    bool    `gorm:"not null"                       json:"active"`
	SortOrder int     `gorm:"column:sort_order;not null"     json:"order"`
	Sector    *Sector `gorm:"foreignKey:SectorID"            json:"sector,omitempty"`
	Timestamps
}

// TableName 指定表名
func (Person) TableName() string { return "people" }
