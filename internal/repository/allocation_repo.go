package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
)

// AllocationRepository 分配数据访问接口
type AllocationRepository interface {
	Create(ctx context.Context, alloc *model.Allocation) error
	GetByID(ctx context.Context, id uint) (*model.Allocation, error)
	// ListByWeek 按 (date, person, order) 返回整周分配，附带条目
	ListByWeek(ctx context.Context, weekID uint) ([]model.Allocation, error)
	// NextOrder 单元格 (week, person, date) 中下一个追加位置：MAX(order)+1，空单元格为 0
	NextOrder(ctx context.Context, weekID, personID uint, date string) (int, error)
	// ReplaceCell 删除单元格内全部分配后按给定顺序插入
	ReplaceCell(ctx context.Context, weekID, personID uint, date string, allocs []model.Allocation) error
	// Exists 精确匹配 (week, person, date, item, order)，用于复制去重
	Exists(ctx context.Context, weekID, personID uint, date string, itemID uint, order int) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateComment(ctx context.Context, id uint, comment *string) error
	UpdateOrder(ctx context.Context, id uint, order int) error
	Move(ctx context.Context, id, personID uint, date string, order int) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// allocationRepo AllocationRepository 的 GORM 实现
type allocationRepo struct {
	db *gorm.DB
}

// NewAllocationRepo 创建 AllocationRepository 实例
func NewAllocationRepo(db *gorm.DB) AllocationRepository {
	return &allocationRepo{db: db}
}

func (r *allocationRepo) Create(ctx context.Context, alloc *model.Allocation) error {
	if alloc.Status == "" {
		alloc.Status = model.AllocationPending
	}
	return r.db.WithContext(ctx).Omit("Item").Create(alloc).Error
}

func (r *allocationRepo) GetByID(ctx context.Context, id uint) (*model.Allocation, error) {
	var alloc model.Allocation
	err := r.db.WithContext(ctx).
		Preload("Item").
		First(&alloc, id).Error
	if err != nil {
		return nil, err
	}
	return &alloc, nil
}

func (r *allocationRepo) ListByWeek(ctx context.Context, weekID uint) ([]model.Allocation, error) {
	var allocs []model.Allocation
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("week_id = ?", weekID).
		Order("date ASC, person_id ASC, sort_order ASC, id ASC").
		Find(&allocs).Error
	return allocs, err
}

func (r *allocationRepo) NextOrder(ctx context.Context, weekID, personID uint, date string) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Select("COALESCE(MAX(sort_order), -1) + 1").
		Where("week_id = ? AND person_id = ? AND date = ?", weekID, personID, date).
		Scan(&next).Error
	return next, err
}

func (r *allocationRepo) ReplaceCell(ctx context.Context, weekID, personID uint, date string, allocs []model.Allocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week_id = ? AND person_id = ? AND date = ?", weekID, personID, date).
			Delete(&model.Allocation{}).Error; err != nil {
			return err
		}
		if len(allocs) > 0 {
			if err := tx.Omit("Item").Create(&allocs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *allocationRepo) Exists(ctx context.Context, weekID, personID uint, date string, itemID uint, order int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Where("week_id = ? AND person_id = ? AND date = ? AND item_id = ? AND sort_order = ?",
			weekID, personID, date, itemID, order).
		Count(&count).Error
	return count > 0, err
}

func (r *allocationRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *allocationRepo) UpdateComment(ctx context.Context, id uint, comment *string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"comment": comment})
}

func (r *allocationRepo) UpdateOrder(ctx context.Context, id uint, order int) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"sort_order": order})
}

func (r *allocationRepo) Move(ctx context.Context, id, personID uint, date string, order int) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"person_id":  personID,
		"date":       date,
		"sort_order": order,
	})
}

func (r *allocationRepo) updateColumns(ctx context.Context, id uint, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Allocation{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *allocationRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Allocation{}, id)
	return result.RowsAffected > 0, result.Error
}
