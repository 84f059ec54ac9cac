package model

// Observation 某人某周的备注，对应 observations，(week_id, person_id) 唯一
type Observation struct {
	ID       uint   `gorm:"primaryKey"     json:"id"`
	WeekID   uint   `gorm:"not null"       json:"week_id"`
	PersonID uint   `gorm:"not null"       json:"person_id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	Timestamps
}

// TableName 指定表名
func (Observation) TableName() string { return "observations" }
