package service

import (
	"time"

	"go.uber.org/zap"

	"weekly-planner/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Sector      SectorService
	Person      PersonService
	Item        ItemService
	Week        WeekService
	Allocation  AllocationService
	Observation ObservationService
	Planning    PlanningService
	Stats       StatsService
	Export      ExportService
	Calendar    CalendarService
}

// NewService 创建 Service 聚合
// now 为当前时间来源，nil 时使用 time.Now
func NewService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	planning := NewPlanningService(repo, logger)
	return &Service{
		Sector:      NewSectorService(repo, logger),
		Person:      NewPersonService(repo, logger),
		Item:        NewItemService(repo, logger),
		Week:        NewWeekService(repo, logger, now),
		Allocation:  NewAllocationService(repo, logger),
		Observation: NewObservationService(repo, logger),
		Planning:    planning,
		Stats:       NewStatsService(repo, logger),
		Export:      NewExportService(planning, logger),
		Calendar:    NewCalendarService(repo, logger),
	}
}
