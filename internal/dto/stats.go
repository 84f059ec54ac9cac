package dto

// ── 统计 DTO ──

// StatsTotals 全周汇总
type StatsTotals struct {
	Total       int    `json:"total"`
	Done        int    `json:"done"`
	NotDone     int    `json:"not_done"`
	Pending     int    `json:"pending"`
	Percentage  int    `json:"percentage"`
	PowerLevel  string `json:"power_level"`
	DragonBalls int    `json:"dragon_balls"`
}

// SectorStats 单个部门的汇总
type SectorStats struct {
	Sector     SectorResponse `json:"sector"`
	Total      int            `json:"total"`
	Done       int            `json:"done"`
	NotDone    int            `json:"not_done"`
	Pending    int            `json:"pending"`
	Percentage int            `json:"percentage"`
	PowerLevel string         `json:"power_level"`
}

// PersonStats 排行榜条目
type PersonStats struct {
	Person     PersonResponse `json:"person"`
	Total      int            `json:"total"`
	Done       int            `json:"done"`
	Percentage int            `json:"percentage"`
}

// WeekStatsResponse 周统计
type WeekStatsResponse struct {
	Week          WeekResponse  `json:"week"`
	Totals        StatsTotals   `json:"totals"`
	Sectors       []SectorStats `json:"sectors"`
	TopPerformers []PersonStats `json:"top_performers"`
	StreakDays    int           `json:"streak_days"`
}
