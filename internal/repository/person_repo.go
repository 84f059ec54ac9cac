package repository

import (
	"context"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
)

// PersonFilter 人员列表过滤条件，nil 表示不过滤
type PersonFilter struct {
	SectorID *uint
	Active   *bool
}

// PersonRepository 人员数据访问接口
type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id uint) (*model.Person, error)
	List(ctx context.Context, filter PersonFilter) ([]model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	ToggleActive(ctx context.Context, id uint) (*model.Person, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// personRepo PersonRepository 的 GORM 实现
type personRepo struct {
	db *gorm.DB
}

// NewPersonRepo 创建 PersonRepository 实例
func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Omit("Sector").Create(person).Error
}

func (r *personRepo) GetByID(ctx context.Context, id uint) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Preload("Sector").
		First(&person, id).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) List(ctx context.Context, filter PersonFilter) ([]model.Person, error) {
	query := r.db.WithContext(ctx).Preload("Sector")
	if filter.SectorID != nil {
		query = query.Where("sector_id = ?", *filter.SectorID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var people []model.Person
	err := query.Order("sort_order ASC, name ASC").Find(&people).Error
	return people, err
}

func (r *personRepo) Update(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).
		Model(person).
		Select("name", "sector_id", "active", "sort_order", "updated_at").
		Omit("Sector").
		Updates(person).Error
}

func (r *personRepo) ToggleActive(ctx context.Context, id uint) (*model.Person, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Person{}).
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

func (r *personRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Person{}, id)
	return result.RowsAffected > 0, result.Error
}
