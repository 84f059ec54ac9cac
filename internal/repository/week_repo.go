package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
)

// WeekFilter 周列表过滤条件
type WeekFilter struct {
	Status string
}

// WeekRepository 计划周数据访问接口
type WeekRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Week, error)
	GetByStartDate(ctx context.Context, startDate string) (*model.Week, error)
	// FindOrCreate 按起始日期查找，不存在时以 open 状态创建
	FindOrCreate(ctx context.Context, startDate, endDate string) (*model.Week, bool, error)
	List(ctx context.Context, filter WeekFilter, offset, limit int) ([]model.Week, int64, error)
	FindPrevious(ctx context.Context, startDate string) (*model.Week, error)
	FindNext(ctx context.Context, startDate string) (*model.Week, error)
	// Close / Reopen 幂等：目标状态已满足时原样返回当前记录
	Close(ctx context.Context, id uint, closedBy *string, at time.Time) (*model.Week, error)
	Reopen(ctx context.Context, id uint) (*model.Week, error)
}

// weekRepo WeekRepository 的 GORM 实现
type weekRepo struct {
	db *gorm.DB
}

// NewWeekRepo 创建 WeekRepository 实例
func NewWeekRepo(db *gorm.DB) WeekRepository {
	return &weekRepo{db: db}
}

func (r *weekRepo) GetByID(ctx context.Context, id uint) (*model.Week, error) {
	var week model.Week
	if err := r.db.WithContext(ctx).First(&week, id).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) GetByStartDate(ctx context.Context, startDate string) (*model.Week, error) {
	var week model.Week
	err := r.db.WithContext(ctx).
		Where("start_date = ?", startDate).
		First(&week).Error
	if err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) FindOrCreate(ctx context.Context, startDate, endDate string) (*model.Week, bool, error) {
	week, err := r.GetByStartDate(ctx, startDate)
	if err == nil {
		return week, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	week = &model.Week{StartDate: startDate, EndDate: endDate, Status: model.WeekStatusOpen}
	if err := r.db.WithContext(ctx).Create(week).Error; err != nil {
		// 并发创建同一周时唯一约束冲突，回读已存在的记录
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, getErr := r.GetByStartDate(ctx, startDate)
			return existing, false, getErr
		}
		return nil, false, err
	}
	return week, true, nil
}

func (r *weekRepo) List(ctx context.Context, filter WeekFilter, offset, limit int) ([]model.Week, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Week{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var weeks []model.Week
	err := query.
		Order("start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&weeks).Error
	return weeks, total, err
}

func (r *weekRepo) FindPrevious(ctx context.Context, startDate string) (*model.Week, error) {
	var week model.Week
	err := r.db.WithContext(ctx).
		Where("start_date < ?", startDate).
		Order("start_date DESC").
		First(&week).Error
	if err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) FindNext(ctx context.Context, startDate string) (*model.Week, error) {
	var week model.Week
	err := r.db.WithContext(ctx).
		Where("start_date > ?", startDate).
		Order("start_date ASC").
		First(&week).Error
	if err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) Close(ctx context.Context, id uint, closedBy *string, at time.Time) (*model.Week, error) {
	week, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if week.IsClosed() {
		return week, nil
	}

	err = r.db.WithContext(ctx).
		Model(&model.Week{}).
		Where("id = ? AND status = ?", id, model.WeekStatusOpen).
		Updates(map[string]interface{}{
			"status":    model.WeekStatusClosed,
			"closed_at": at,
			"closed_by": closedBy,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *weekRepo) Reopen(ctx context.Context, id uint) (*model.Week, error) {
	week, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !week.IsClosed() {
		return week, nil
	}

	err = r.db.WithContext(ctx).
		Model(&model.Week{}).
		Where("id = ? AND status = ?", id, model.WeekStatusClosed).
		Updates(map[string]interface{}{
			"status":    model.WeekStatusOpen,
			"closed_at": nil,
			"closed_by": nil,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
