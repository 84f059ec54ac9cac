package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/pkg/metrics"
	"weekly-planner/backend/pkg/weekdate"
)

// ── 复制前置条件 ──

// 复制失败原因，按检查顺序排列
const (
	CopyReasonSourceNotFound = "Semana de origem não encontrada"
	CopyReasonDestNotFound   = "Semana de destino não encontrada"
	CopyReasonDestClosed     = "Semana de destino está fechada"
)

// CopyError 复制前置条件不满足，Reason 为面向用户的原因
type CopyError struct {
	Reason string
}

func (e *CopyError) Error() string { return e.Reason }

// PlanningService 周计划聚合接口
type PlanningService interface {
	// GetPlanning 部门 → 在职人员 → 日期 → 分配 的嵌套视图
	GetPlanning(ctx context.Context, weekID uint) (*dto.PlanningResponse, error)
	// CopyWeek 按日期偏移将源周分配追加到目标周，已存在的 (week, person, date, item, order) 跳过
	CopyWeek(ctx context.Context, sourceWeekID, destWeekID uint) (*dto.CopyWeekResponse, error)
}

type planningService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanningService 创建 PlanningService 实例
func NewPlanningService(repo *repository.Repository, logger *zap.Logger) PlanningService {
	return &planningService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// GetPlanning
// ═══════════════════════════════════════════════════════════

func (s *planningService) GetPlanning(ctx context.Context, weekID uint) (*dto.PlanningResponse, error) {
	// 1. 周
	week, err := findWeek(ctx, s.repo, weekID)
	if err != nil {
		if !errors.Is(err, ErrWeekNotFound) {
			s.logger.Error("查询周失败", zap.Uint("week_id", weekID), zap.Error(err))
		}
		return nil, err
	}

	// 2. 部门、在职人员、分配、备注
	sectors, err := s.repo.Sector.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}
	active := true
	people, err := s.repo.Person.List(ctx, repository.PersonFilter{Active: &active})
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}
	allocs, err := s.repo.Allocation.ListByWeek(ctx, weekID)
	if err != nil {
		s.logger.Error("查询周分配失败", zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}
	observations, err := s.repo.Observation.ListByWeek(ctx, weekID)
	if err != nil {
		s.logger.Error("查询周备注失败", zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}

	// 3. person → date → 分配（ListByWeek 已按 order 升序）
	byPerson := groupByPersonAndDate(allocs)

	// 4. person → 备注
	notes := make(map[uint]string, len(observations))
	for _, o := range observations {
		notes[o.PersonID] = o.Text
	}

	// 5. 按部门顺序组装，仅保留有在职人员的部门
	peopleBySector := make(map[uint][]*model.Person)
	for i := range people {
		p := &people[i]
		peopleBySector[p.SectorID] = append(peopleBySector[p.SectorID], p)
	}

	result := &dto.PlanningResponse{
		Week:    toWeekResponse(week),
		Sectors: make([]dto.PlanningSector, 0, len(sectors)),
	}
	for i := range sectors {
		members := peopleBySector[sectors[i].ID]
		if len(members) == 0 {
			continue
		}

		entry := dto.PlanningSector{
			Sector: toSectorResponse(&sectors[i]),
			People: make([]dto.PlanningPerson, 0, len(members)),
		}
		for _, p := range members {
			pp := dto.PlanningPerson{
				Person:            toPersonResponse(p),
				AllocationsByDate: make(map[string][]dto.AllocationResponse),
			}
			for date, list := range byPerson[p.ID] {
				resp := make([]dto.AllocationResponse, 0, len(list))
				for j := range list {
					resp = append(resp, toAllocationResponse(list[j]))
				}
				pp.AllocationsByDate[date] = resp
			}
			if text, ok := notes[p.ID]; ok {
				t := text
				pp.Observation = &t
			}
			entry.People = append(entry.People, pp)
		}
		result.Sectors = append(result.Sectors, entry)
	}

	return result, nil
}

// groupByPersonAndDate 保持输入顺序分组
func groupByPersonAndDate(allocs []model.Allocation) map[uint]map[string][]*model.Allocation {
	grouped := make(map[uint]map[string][]*model.Allocation)
	for i := range allocs {
		a := &allocs[i]
		byDate, ok := grouped[a.PersonID]
		if !ok {
			byDate = make(map[string][]*model.Allocation)
			grouped[a.PersonID] = byDate
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	return grouped
}

// ═══════════════════════════════════════════════════════════
// CopyWeek
// ═══════════════════════════════════════════════════════════
//
// 前置条件依次检查：源周存在 → 目标周存在 → 目标周为 open。
// 整个复制在单个事务中完成，计数仅包含实际插入的行。

func (s *planningService) CopyWeek(ctx context.Context, sourceWeekID, destWeekID uint) (*dto.CopyWeekResponse, error) {
	count := 0
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		source, err := findWeek(ctx, tx, sourceWeekID)
		if err != nil {
			if errors.Is(err, ErrWeekNotFound) {
				return &CopyError{Reason: CopyReasonSourceNotFound}
			}
			return err
		}
		dest, err := findWeek(ctx, tx, destWeekID)
		if err != nil {
			if errors.Is(err, ErrWeekNotFound) {
				return &CopyError{Reason: CopyReasonDestNotFound}
			}
			return err
		}
		if dest.IsClosed() {
			return &CopyError{Reason: CopyReasonDestClosed}
		}

		offset, err := weekdate.DiffDays(source.StartDate, dest.StartDate)
		if err != nil {
			return err
		}

		allocs, err := tx.Allocation.ListByWeek(ctx, sourceWeekID)
		if err != nil {
			return err
		}

		for _, a := range allocs {
			newDate, err := weekdate.AddDays(a.Date, offset)
			if err != nil {
				return err
			}
			exists, err := tx.Allocation.Exists(ctx, destWeekID, a.PersonID, newDate, a.ItemID, a.SortOrder)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := tx.Allocation.Create(ctx, &model.Allocation{
				WeekID:    destWeekID,
				PersonID:  a.PersonID,
				ItemID:    a.ItemID,
				Date:      newDate,
				SortOrder: a.SortOrder,
				Status:    model.AllocationPending,
			}); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		var copyErr *CopyError
		if !errors.As(err, &copyErr) {
			s.logger.Error("复制周分配失败",
				zap.Uint("source_week_id", sourceWeekID),
				zap.Uint("dest_week_id", destWeekID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	metrics.RecordCopiedAllocations(count)
	s.logger.Info("复制周分配完成",
		zap.Uint("source_week_id", sourceWeekID),
		zap.Uint("dest_week_id", destWeekID),
		zap.Int("count", count),
	)
	return &dto.CopyWeekResponse{
		Success: true,
		Count:   count,
		Message: fmt.Sprintf("%d alocações copiadas com sucesso", count),
	}, nil
}
