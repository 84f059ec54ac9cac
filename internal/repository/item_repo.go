package repository

import (
	"context"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
)

// ItemFilter 条目列表过滤条件，nil 表示不过滤
type ItemFilter struct {
	SuggestedSectorID *uint
	Active            *bool
}

// ItemRepository 活动条目数据访问接口
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id uint) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	ToggleActive(ctx context.Context, id uint) (*model.Item, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// itemRepo ItemRepository 的 GORM 实现
type itemRepo struct {
	db *gorm.DB
}

// NewItemRepo 创建 ItemRepository 实例
func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit("SuggestedSector").Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Preload("SuggestedSector").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) List(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	query := r.db.WithContext(ctx).Preload("SuggestedSector")
	if filter.SuggestedSectorID != nil {
		query = query.Where("suggested_sector_id = ?", *filter.SuggestedSectorID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var items []model.Item
	err := query.Order("title ASC").Find(&items).Error
	return items, err
}

// Update 写回全部可编辑列，nil 的 Description / SuggestedSectorID 会被清空
func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).
		Model(item).
		Select("title", "description", "suggested_sector_id", "color", "active", "updated_at").
		Omit("SuggestedSector").
		Updates(item).Error
}

func (r *itemRepo) ToggleActive(ctx context.Context, id uint) (*model.Item, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     gorm.Expr("NOT active"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *itemRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	return result.RowsAffected > 0, result.Error
}
