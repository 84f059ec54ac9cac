package dto

// ── 周计划视图 ──

// PlanningResponse 周计划：部门 → 人员 → 日期 → 分配
type PlanningResponse struct {
	Week    WeekResponse     `json:"week"`
	Sectors []PlanningSector `json:"sectors"`
}

// PlanningSector 至少含一名在职人员的部门
type PlanningSector struct {
	Sector SectorResponse   `json:"sector"`
	People []PlanningPerson `json:"people"`
}

// PlanningPerson 人员在该周的分配与备注
// AllocationsByDate 的键为 "2006-01-02"，每个列表按显示顺序升序
type PlanningPerson struct {
	Person            PersonResponse                  `json:"person"`
	AllocationsByDate map[string][]AllocationResponse `json:"allocations_by_date"`
	Observation       *string                         `json:"observation"`
}
