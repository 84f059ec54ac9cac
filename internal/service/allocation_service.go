package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"weekly-planner/backend/internal/dto"
	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/pkg/weekdate"
)

// ── 分配模块业务错误 ──

var (
	ErrAllocationNotFound = errors.New("Alocação não encontrada")
	ErrInvalidStatus      = errors.New("Status inválido. Use: pending, done ou not_done")
	ErrInvalidDate        = errors.New("Data inválida")
	ErrDateOutsideWeek    = errors.New("Data fora do intervalo da semana")
)

// AllocationService 分配业务接口
//
// 所有写操作在同一事务内先校验周锁再修改，周已关闭时返回 ErrWeekLocked。
type AllocationService interface {
	ListByWeek(ctx context.Context, weekID uint) ([]dto.AllocationResponse, error)
	// Create 未指定 order 时追加到单元格末尾
	Create(ctx context.Context, weekID uint, req *dto.CreateAllocationRequest) (*dto.AllocationResponse, error)
	// BulkReplace 覆盖整个单元格，order 等于列表下标
	BulkReplace(ctx context.Context, weekID uint, req *dto.BulkReplaceRequest) ([]dto.AllocationResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*dto.AllocationResponse, error)
	UpdateComment(ctx context.Context, id uint, comment *string) (*dto.AllocationResponse, error)
	UpdateOrder(ctx context.Context, id uint, order int) (*dto.AllocationResponse, error)
	// Move 追加到目标单元格末尾，源单元格不重新编号
	Move(ctx context.Context, id uint, req *dto.MoveAllocationRequest) (*dto.AllocationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type allocationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAllocationService 创建 AllocationService 实例
func NewAllocationService(repo *repository.Repository, logger *zap.Logger) AllocationService {
	return &allocationService{repo: repo, logger: logger}
}

// ────────────────────── ListByWeek ──────────────────────

func (s *allocationService) ListByWeek(ctx context.Context, weekID uint) ([]dto.AllocationResponse, error) {
	if _, err := findWeek(ctx, s.repo, weekID); err != nil {
		if !errors.Is(err, ErrWeekNotFound) {
			s.logger.Error("查询周失败", zap.Uint("week_id", weekID), zap.Error(err))
		}
		return nil, err
	}

	allocs, err := s.repo.Allocation.ListByWeek(ctx, weekID)
	if err != nil {
		s.logger.Error("查询周分配失败", zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AllocationResponse, 0, len(allocs))
	for i := range allocs {
		result = append(result, toAllocationResponse(&allocs[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *allocationService) Create(ctx context.Context, weekID uint, req *dto.CreateAllocationRequest) (*dto.AllocationResponse, error) {
	var created *model.Allocation
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		week, err := loadWritableWeek(ctx, tx, weekID)
		if err != nil {
			return err
		}
		date, err := dateInWeek(week, req.Date)
		if err != nil {
			return err
		}
		if err := requirePerson(ctx, tx, req.PersonID); err != nil {
			return err
		}
		if err := requireItem(ctx, tx, req.ItemID); err != nil {
			return err
		}

		order := 0
		if req.Order != nil {
			order = *req.Order
		} else if order, err = tx.Allocation.NextOrder(ctx, weekID, req.PersonID, date); err != nil {
			return err
		}

		alloc := &model.Allocation{
			WeekID:    weekID,
			PersonID:  req.PersonID,
			ItemID:    req.ItemID,
			Date:      date,
			SortOrder: order,
			Status:    model.AllocationPending,
		}
		if err := tx.Allocation.Create(ctx, alloc); err != nil {
			return err
		}
		created, err = tx.Allocation.GetByID(ctx, alloc.ID)
		return err
	})
	if err != nil {
		return nil, s.logWriteError("创建分配失败", err, zap.Uint("week_id", weekID))
	}

	resp := toAllocationResponse(created)
	return &resp, nil
}

// ────────────────────── BulkReplace ──────────────────────

func (s *allocationService) BulkReplace(ctx context.Context, weekID uint, req *dto.BulkReplaceRequest) ([]dto.AllocationResponse, error) {
	var cell []model.Allocation
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		week, err := loadWritableWeek(ctx, tx, weekID)
		if err != nil {
			return err
		}
		date, err := dateInWeek(week, req.Date)
		if err != nil {
			return err
		}
		if err := requirePerson(ctx, tx, req.PersonID); err != nil {
			return err
		}

		allocs := make([]model.Allocation, 0, len(req.ItemIDs))
		for i, itemID := range req.ItemIDs {
			if err := requireItem(ctx, tx, itemID); err != nil {
				return err
			}
			allocs = append(allocs, model.Allocation{
				WeekID:    weekID,
				PersonID:  req.PersonID,
				ItemID:    itemID,
				Date:      date,
				SortOrder: i,
				Status:    model.AllocationPending,
			})
		}

		if err := tx.Allocation.ReplaceCell(ctx, weekID, req.PersonID, date, allocs); err != nil {
			return err
		}

		all, err := tx.Allocation.ListByWeek(ctx, weekID)
		if err != nil {
			return err
		}
		cell = filterCell(all, req.PersonID, date)
		return nil
	})
	if err != nil {
		return nil, s.logWriteError("批量替换分配失败", err, zap.Uint("week_id", weekID), zap.Uint("person_id", req.PersonID))
	}

	result := make([]dto.AllocationResponse, 0, len(cell))
	for i := range cell {
		result = append(result, toAllocationResponse(&cell[i]))
	}
	return result, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *allocationService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.AllocationResponse, error) {
	if !model.ValidAllocationStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.mutate(ctx, id, "更新分配状态失败", func(tx *repository.Repository, _ *model.Allocation, _ *model.Week) error {
		return tx.Allocation.UpdateStatus(ctx, id, status)
	})
}

// ────────────────────── UpdateComment ──────────────────────

func (s *allocationService) UpdateComment(ctx context.Context, id uint, comment *string) (*dto.AllocationResponse, error) {
	comment = trimOptional(comment)
	return s.mutate(ctx, id, "更新分配备注失败", func(tx *repository.Repository, _ *model.Allocation, _ *model.Week) error {
		return tx.Allocation.UpdateComment(ctx, id, comment)
	})
}

// ────────────────────── UpdateOrder ──────────────────────

func (s *allocationService) UpdateOrder(ctx context.Context, id uint, order int) (*dto.AllocationResponse, error) {
	return s.mutate(ctx, id, "更新分配顺序失败", func(tx *repository.Repository, _ *model.Allocation, _ *model.Week) error {
		return tx.Allocation.UpdateOrder(ctx, id, order)
	})
}

// ────────────────────── Move ──────────────────────

func (s *allocationService) Move(ctx context.Context, id uint, req *dto.MoveAllocationRequest) (*dto.AllocationResponse, error) {
	return s.mutate(ctx, id, "移动分配失败", func(tx *repository.Repository, _ *model.Allocation, week *model.Week) error {
		date, err := dateInWeek(week, req.Date)
		if err != nil {
			return err
		}
		if err := requirePerson(ctx, tx, req.PersonID); err != nil {
			return err
		}
		order, err := tx.Allocation.NextOrder(ctx, week.ID, req.PersonID, date)
		if err != nil {
			return err
		}
		return tx.Allocation.Move(ctx, id, req.PersonID, date, order)
	})
}

// ────────────────────── Delete ──────────────────────

func (s *allocationService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, _, err := loadWritableAllocation(ctx, tx, id); err != nil {
			return err
		}
		deleted, err := tx.Allocation.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrAllocationNotFound
		}
		return nil
	})
	if err != nil {
		return s.logWriteError("删除分配失败", err, zap.Uint("id", id))
	}
	return nil
}

// ── 辅助 ──

// mutate 在事务内加载分配、校验周锁、执行修改并回读
func (s *allocationService) mutate(
	ctx context.Context,
	id uint,
	failMsg string,
	fn func(tx *repository.Repository, alloc *model.Allocation, week *model.Week) error,
) (*dto.AllocationResponse, error) {
	var updated *model.Allocation
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		alloc, week, err := loadWritableAllocation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, alloc, week); err != nil {
			return err
		}
		updated, err = tx.Allocation.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.logWriteError(failMsg, err, zap.Uint("id", id))
	}

	resp := toAllocationResponse(updated)
	return &resp, nil
}

// logWriteError 业务错误原样返回，存储错误记录日志
func (s *allocationService) logWriteError(msg string, err error, fields ...zap.Field) error {
	if isBusinessError(err) {
		return err
	}
	s.logger.Error(msg, append(fields, zap.Error(err))...)
	return err
}

// dateInWeek 校验日期格式并确保落在周一至周五之间
func dateInWeek(week *model.Week, raw string) (string, error) {
	t, err := weekdate.Parse(raw)
	if err != nil {
		return "", ErrInvalidDate
	}
	date := weekdate.Format(t)
	// 同格式日期字符串可直接按字典序比较
	if date < week.StartDate || date > week.EndDate {
		return "", ErrDateOutsideWeek
	}
	return date, nil
}

func filterCell(allocs []model.Allocation, personID uint, date string) []model.Allocation {
	cell := make([]model.Allocation, 0)
	for _, a := range allocs {
		if a.PersonID == personID && a.Date == date {
			cell = append(cell, a)
		}
	}
	return cell
}

// isBusinessError 判断是否为可直接返回给调用方的业务错误
func isBusinessError(err error) bool {
	var copyErr *CopyError
	if errors.As(err, &copyErr) {
		return true
	}
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var businessErrors = []error{
	ErrWeekLocked,
	ErrWeekNotFound,
	ErrAllocationNotFound,
	ErrInvalidStatus,
	ErrInvalidDate,
	ErrDateOutsideWeek,
	ErrPersonInvalid,
	ErrItemInvalid,
}
