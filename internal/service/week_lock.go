package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
	"weekly-planner/backend/internal/repository"
	"weekly-planner/backend/pkg/metrics"
)

// ── 周锁 ──
//
// 所有分配 / 备注的写操作在事务开始处调用 EnsureWeekWritable，
// 周已关闭时整笔写入被拒绝，不会部分生效。

// ErrWeekLocked 周已关闭，禁止写入
var ErrWeekLocked = errors.New("Esta semana está fechada e não pode ser editada.")

// EnsureWeekWritable 周为 closed 时返回 ErrWeekLocked
func EnsureWeekWritable(week *model.Week) error {
	if week.IsClosed() {
		metrics.RecordLockedWrite()
		return ErrWeekLocked
	}
	return nil
}

// findWeek 按 ID 加载周，不存在时返回 ErrWeekNotFound
func findWeek(ctx context.Context, repo *repository.Repository, weekID uint) (*model.Week, error) {
	week, err := repo.Week.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	return week, nil
}

// loadWritableWeek 按周 ID 解析并校验可写
func loadWritableWeek(ctx context.Context, repo *repository.Repository, weekID uint) (*model.Week, error) {
	week, err := findWeek(ctx, repo, weekID)
	if err != nil {
		return nil, err
	}
	if err := EnsureWeekWritable(week); err != nil {
		return nil, err
	}
	return week, nil
}

// loadWritableAllocation 先加载分配，再通过其所属周校验可写
func loadWritableAllocation(ctx context.Context, repo *repository.Repository, allocationID uint) (*model.Allocation, *model.Week, error) {
	alloc, err := repo.Allocation.GetByID(ctx, allocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAllocationNotFound
		}
		return nil, nil, err
	}
	week, err := loadWritableWeek(ctx, repo, alloc.WeekID)
	if err != nil {
		return nil, nil, err
	}
	return alloc, week, nil
}
