package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/pkg/weekdate"
)

const calendarProductID = "-//weekly-planner//planejamento//PT"

// CalendarService iCalendar 导出接口
type CalendarService interface {
	// WeekCalendar 将周内分配导出为全天事件；personID 非空时仅导出该人员
	WeekCalendar(ctx context.Context, weekID uint, personID *uint) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// ────────────────────── WeekCalendar ──────────────────────

func (s *calendarService) WeekCalendar(ctx context.Context, weekID uint, personID *uint) (string, error) {
	week, err := findWeek(ctx, s.repo, weekID)
	if err != nil {
		if !errors.Is(err, ErrWeekNotFound) {
			s.logger.Error("查询周失败", zap.Uint("week_id", weekID), zap.Error(err))
		}
		return "", err
	}

	if personID != nil {
		if _, err := s.repo.Person.GetByID(ctx, *personID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrPersonNotFound
			}
			s.logger.Error("查询人员失败", zap.Uint("person_id", *personID), zap.Error(err))
			return "", err
		}
	}

	allocs, err := s.repo.Allocation.ListByWeek(ctx, weekID)
	if err != nil {
		s.logger.Error("查询周分配失败", zap.Uint("week_id", weekID), zap.Error(err))
		return "", err
	}
	people, err := s.repo.Person.List(ctx, repository.PersonFilter{})
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return "", err
	}
	names := make(map[uint]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(fmt.Sprintf("Planejamento %s", week.StartDate))

	stamp := time.Now().UTC()
	for i := range allocs {
		a := &allocs[i]
		if personID != nil && a.PersonID != *personID {
			continue
		}
		day, err := weekdate.Parse(a.Date)
		if err != nil {
			// 日期在写入时已校验，此处跳过历史脏数据
			s.logger.Warn("跳过无效日期的分配", zap.Uint("allocation_id", a.ID), zap.String("date", a.Date))
			continue
		}
		addAllocationEvent(cal, a, names[a.PersonID], day, stamp)
	}

	return cal.Serialize(), nil
}

// addAllocationEvent 每条分配一个全天事件，UID 由分配 ID 决定
func addAllocationEvent(cal *ics.Calendar, a *model.Allocation, personName string, day, stamp time.Time) {
	title := "(item removido)"
	if a.Item != nil {
		title = a.Item.Title
	}
	summary := title
	if personName != "" {
		summary = fmt.Sprintf("%s - %s", title, personName)
	}

	event := cal.AddEvent(fmt.Sprintf("allocation-%d@weekly-planner", a.ID))
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(day)
	event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	event.SetSummary(summary)
	event.SetProperty(ics.ComponentPropertyCategories, a.Status)
	if a.Comment != nil && *a.Comment != "" {
		event.SetDescription(*a.Comment)
	}
	switch a.Status {
	case model.AllocationDone:
		event.SetProperty(ics.ComponentPropertyStatus, "CONFIRMED")
	case model.AllocationNotDone:
		event.SetProperty(ics.ComponentPropertyStatus, "CANCELLED")
	default:
		event.SetProperty(ics.ComponentPropertyStatus, "TENTATIVE")
	}
}
