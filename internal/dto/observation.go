package dto

import "time"

// UpsertObservationRequest 写入备注，空白文本表示删除
type UpsertObservationRequest struct {
	Text string `json:"text" binding:"max=5000"`
}

// ObservationResponse 备注信息
type ObservationResponse struct {
	ID        uint      `json:"id"`
	WeekID    uint      `json:"week_id"`
	PersonID  uint      `json:"person_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
