package repository

import (
	"context"

	"gorm.io/gorm"

	"weekly-planner/backend/internal/model"
)

// SectorRepository 部门数据访问接口
type SectorRepository interface {
	Create(ctx context.Context, sector *model.Sector) error
	GetByID(ctx context.Context, id uint) (*model.Sector, error)
	GetByName(ctx context.Context, name string) (*model.Sector, error)
	List(ctx context.Context) ([]model.Sector, error)
	Update(ctx context.Context, sector *model.Sector) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountPeople(ctx context.Context, sectorID uint) (int64, error)
}

// sectorRepo SectorRepository 的 GORM 实现
type sectorRepo struct {
	db *gorm.DB
}

// NewSectorRepo 创建 SectorRepository 实例
func NewSectorRepo(db *gorm.DB) SectorRepository {
	return &sectorRepo{db: db}
}

func (r *sectorRepo) Create(ctx context.Context, sector *model.Sector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

func (r *sectorRepo) GetByID(ctx context.Context, id uint) (*model.Sector, error) {
	var sector model.Sector
	if err := r.db.WithContext(ctx).First(&sector, id).Error; err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepo) GetByName(ctx context.Context, name string) (*model.Sector, error) {
	var sector model.Sector
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&sector).Error
	if err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepo) List(ctx context.Context) ([]model.Sector, error) {
	var sectors []model.Sector
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&sectors).Error
	return sectors, err
}

func (r *sectorRepo) Update(ctx context.Context, sector *model.Sector) error {
	return r.db.WithContext(ctx).
		Model(sector).
		Select("name", "sort_order", "updated_at").
		Updates(sector).Error
}

func (r *sectorRepo) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Sector{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *sectorRepo) CountPeople(ctx context.Context, sectorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Person{}).
		Where("sector_id = ?", sectorID).
		Count(&count).Error
	return count, err
}
